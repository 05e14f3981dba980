package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"contentforge/internal/content_service/rag/interfaces"
)

// maxPageBytes bounds how much of a page we are willing to read.
const maxPageBytes = 4 << 20

// WebLoader implements the URLLoader interface. It fetches a page and
// converts the HTML to markdown, which reads as plain prose once the
// tags are gone and keeps headings usable as semantic boundaries for
// the splitter.
type WebLoader struct {
	client *http.Client
}

// NewWebLoader creates a WebLoader with a bounded request timeout.
func NewWebLoader(timeout time.Duration) *WebLoader {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &WebLoader{client: &http.Client{Timeout: timeout}}
}

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// ExtractURL fetches the page and returns its title and readable text.
func (l *WebLoader) ExtractURL(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "contentforge/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", "", err
	}
	html := string(body)

	title := ""
	if m := titleRe.FindStringSubmatch(html); len(m) == 2 {
		title = strings.TrimSpace(m[1])
	}

	text, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", "", fmt.Errorf("extracting content from %s: %w", url, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", fmt.Errorf("no readable content at %s", url)
	}
	return title, text, nil
}

// compile-time check to ensure WebLoader implements the URLLoader interface
var _ interfaces.URLLoader = (*WebLoader)(nil)

package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ExtractJSON pulls a JSON value out of free-form model output. Models
// wrap structured answers in markdown fences or chat filler, so it
// tries, in order: a fenced code block, the widest brace or bracket
// span, and finally the whole string. The boolean reports whether any
// attempt parsed.
func ExtractJSON(raw string) (interface{}, bool) {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		if v, ok := tryParse(m[1]); ok {
			return v, true
		}
	}

	if span := widestSpan(raw, '{', '}'); span != "" {
		if v, ok := tryParse(span); ok {
			return v, true
		}
	}
	if span := widestSpan(raw, '[', ']'); span != "" {
		if v, ok := tryParse(span); ok {
			return v, true
		}
	}

	return tryParse(raw)
}

func tryParse(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

func widestSpan(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

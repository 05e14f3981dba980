package llm

import (
	"context"
	"errors"
	"testing"

	"contentforge/pkg/logger"
)

type countingGenerator struct {
	calls  int
	output string
	err    error
}

func (g *countingGenerator) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

func TestFailoverPrefersPrimary(t *testing.T) {
	primary := &countingGenerator{output: "primary"}
	secondary := &countingGenerator{output: "secondary"}
	f := NewFailover(primary, secondary, logger.New("test"))

	out, err := f.Generate(context.Background(), "sys", "prompt", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "primary" {
		t.Errorf("output = %q, want primary", out)
	}
	if secondary.calls != 0 {
		t.Error("secondary must not be called while the primary is healthy")
	}
}

func TestFailoverIsSticky(t *testing.T) {
	primary := &countingGenerator{err: errors.New("unsupported endpoint")}
	secondary := &countingGenerator{output: "secondary"}
	f := NewFailover(primary, secondary, logger.New("test"))

	for i := 0; i < 3; i++ {
		out, err := f.Generate(context.Background(), "sys", "prompt", 100)
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if out != "secondary" {
			t.Errorf("call %d output = %q, want secondary", i, out)
		}
	}

	if primary.calls != 1 {
		t.Errorf("primary probed %d times, want exactly 1", primary.calls)
	}
	if !f.Degraded() {
		t.Error("expected the failover to report degraded")
	}
}

func TestFailoverReturnsSecondaryError(t *testing.T) {
	primary := &countingGenerator{err: errors.New("primary down")}
	secondary := &countingGenerator{err: errors.New("secondary down")}
	f := NewFailover(primary, secondary, logger.New("test"))

	_, err := f.Generate(context.Background(), "sys", "prompt", 100)
	if err == nil || err.Error() != "secondary down" {
		t.Fatalf("expected the secondary's error, got %v", err)
	}
}

func TestFailoverDoesNotDegradeOnCancelledContext(t *testing.T) {
	primary := &countingGenerator{err: context.Canceled}
	secondary := &countingGenerator{output: "secondary"}
	f := NewFailover(primary, secondary, logger.New("test"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Generate(ctx, "sys", "prompt", 100); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if f.Degraded() {
		t.Error("a cancelled context must not mark the primary unhealthy")
	}
	if secondary.calls != 0 {
		t.Error("secondary must not run on a cancelled context")
	}
}

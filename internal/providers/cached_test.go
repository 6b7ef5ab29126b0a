package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/quill/internal/gencache"
)

type countingGen struct {
	content string
	err     error
	calls   int
}

func (g *countingGen) Generate(_ context.Context, _ GenerateRequest) (GenerateResponse, error) {
	g.calls++
	if g.err != nil {
		return GenerateResponse{}, g.err
	}
	return GenerateResponse{Content: g.content, TokensUsed: 42}, nil
}

func (g *countingGen) Available(_ context.Context) bool { return true }
func (g *countingGen) Name() string                     { return "fake" }

func newTestCache(t *testing.T) *gencache.Cache {
	t.Helper()
	cache, err := gencache.New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("gencache.New error: %v", err)
	}
	return cache
}

func TestWithCache_SecondCallHitsCache(t *testing.T) {
	cache := newTestCache(t)
	inner := &countingGen{content: "feat: add caching"}
	gen := WithCache(inner, "test-model", cache)

	req := GenerateRequest{SystemPrompt: "sys", UserPrompt: "user"}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (second call should be served from cache)", inner.calls)
	}
	if second.Content != first.Content || second.TokensUsed != first.TokensUsed {
		t.Errorf("cached response %+v differs from original %+v", second, first)
	}
}

func TestWithCache_DifferentPromptsMiss(t *testing.T) {
	cache := newTestCache(t)
	inner := &countingGen{content: "ok"}
	gen := WithCache(inner, "test-model", cache)

	if _, err := gen.Generate(context.Background(), GenerateRequest{UserPrompt: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(context.Background(), GenerateRequest{UserPrompt: "b"}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestWithCache_ErrorsNotCached(t *testing.T) {
	cache := newTestCache(t)
	inner := &countingGen{err: errors.New("backend down")}
	gen := WithCache(inner, "test-model", cache)

	if _, err := gen.Generate(context.Background(), GenerateRequest{UserPrompt: "x"}); err == nil {
		t.Fatal("Expected backend error")
	}
	inner.err = nil
	inner.content = "recovered"

	resp, err := gen.Generate(context.Background(), GenerateRequest{UserPrompt: "x"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if resp.Content != "recovered" {
		t.Errorf("Content = %q, want fresh backend response", resp.Content)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (errors must not be cached)", inner.calls)
	}
}

func TestWithCache_NilCachePassthrough(t *testing.T) {
	inner := &countingGen{content: "ok"}
	if got := WithCache(inner, "m", nil); got != Generator(inner) {
		t.Error("nil cache should return the inner generator unchanged")
	}
}

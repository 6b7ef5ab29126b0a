package providers

import (
	"context"
	"encoding/json"

	"github.com/dshills/quill/internal/gencache"
)

// cachedGenerator wraps a Generator with a response cache so identical
// prompts against the same backend don't re-bill.
type cachedGenerator struct {
	inner Generator
	model string
	cache *gencache.Cache
}

// WithCache wraps gen with a response cache. A nil cache returns gen as-is.
func WithCache(gen Generator, model string, cache *gencache.Cache) Generator {
	if cache == nil {
		return gen
	}
	return &cachedGenerator{inner: gen, model: model, cache: cache}
}

func (c *cachedGenerator) Name() string { return c.inner.Name() }

func (c *cachedGenerator) Available(ctx context.Context) bool {
	return c.inner.Available(ctx)
}

func (c *cachedGenerator) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	key := gencache.HashKey(c.inner.Name(), c.model, req.SystemPrompt, req.UserPrompt)
	if cached, ok := c.cache.Get(key); ok {
		var resp GenerateResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		// Unreadable entry: fall through to the backend.
	}

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return resp, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = c.cache.Put(key, string(data))
	}
	return resp, nil
}

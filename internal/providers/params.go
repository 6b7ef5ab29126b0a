package providers

import "context"

// Params are the configured generation defaults. They apply to any request
// field the caller leaves at its zero value.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// WithParams wraps gen so every request picks up the configured generation
// defaults. Zero params return gen as-is.
func WithParams(gen Generator, p Params) Generator {
	if p == (Params{}) {
		return gen
	}
	return &paramsGenerator{inner: gen, params: p}
}

type paramsGenerator struct {
	inner  Generator
	params Params
}

func (g *paramsGenerator) Name() string { return g.inner.Name() }

func (g *paramsGenerator) Available(ctx context.Context) bool {
	return g.inner.Available(ctx)
}

func (g *paramsGenerator) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if req.MaxTokens == 0 {
		req.MaxTokens = g.params.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = g.params.Temperature
	}
	if req.TopP == 0 {
		req.TopP = g.params.TopP
	}
	return g.inner.Generate(ctx, req)
}

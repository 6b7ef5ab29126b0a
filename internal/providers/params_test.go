package providers

import (
	"context"
	"testing"
)

type capturingGen struct {
	got GenerateRequest
}

func (g *capturingGen) Generate(_ context.Context, req GenerateRequest) (GenerateResponse, error) {
	g.got = req
	return GenerateResponse{Content: "ok"}, nil
}

func (g *capturingGen) Available(_ context.Context) bool { return true }
func (g *capturingGen) Name() string                     { return "fake" }

func TestWithParams_FillsUnsetFields(t *testing.T) {
	inner := &capturingGen{}
	gen := WithParams(inner, Params{MaxTokens: 512, Temperature: 0.2, TopP: 0.9})

	if _, err := gen.Generate(context.Background(), GenerateRequest{UserPrompt: "hi"}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if inner.got.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", inner.got.MaxTokens)
	}
	if inner.got.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", inner.got.Temperature)
	}
	if inner.got.TopP != 0.9 {
		t.Errorf("TopP = %v, want 0.9", inner.got.TopP)
	}
}

func TestWithParams_ExplicitRequestFieldsWin(t *testing.T) {
	inner := &capturingGen{}
	gen := WithParams(inner, Params{MaxTokens: 512, Temperature: 0.2})

	req := GenerateRequest{UserPrompt: "hi", MaxTokens: 10, Temperature: 0.9}
	if _, err := gen.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if inner.got.MaxTokens != 10 {
		t.Errorf("MaxTokens = %d, want the request's own 10", inner.got.MaxTokens)
	}
	if inner.got.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want the request's own 0.9", inner.got.Temperature)
	}
}

func TestWithParams_ZeroParamsPassthrough(t *testing.T) {
	inner := &capturingGen{}
	if got := WithParams(inner, Params{}); got != Generator(inner) {
		t.Error("Zero params should return the inner generator unchanged")
	}
}

package providers

import (
	"context"
	"fmt"
	"os"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements the Generator interface using the official openai-go SDK
// (chat completions).
type OpenAI struct {
	apiKey string
	model  string
	client openai.Client
}

// NewOpenAI creates a new OpenAI backend. QUILL_OPENAI_BASE_URL can point it
// at any OpenAI-compatible endpoint.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if baseURL := os.Getenv("QUILL_OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{
		apiKey: key,
		model:  model,
		client: openai.NewClient(opts...),
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Available reports whether the backend is configured.
func (o *OpenAI) Available(_ context.Context) bool { return o.apiKey != "" }

func (o *OpenAI) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return GenerateResponse{}, fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return GenerateResponse{}, fmt.Errorf("empty text content in API response")
	}

	return GenerateResponse{
		Content:    content,
		TokensUsed: int(resp.Usage.TotalTokens),
	}, nil
}

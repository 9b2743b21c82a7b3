package openrouter

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultBaseURL is the OpenRouter chat-completions endpoint
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is a small instruct model suited to labeled extraction
	DefaultModel = "mistralai/mistral-7b-instruct"

	defaultTemperature = 0.3
	defaultMaxTokens   = 500
)

// Client adapts the OpenRouter chat-completions API to the gollem LLM
// client interface so the extraction pipeline stays provider-agnostic.
type Client struct {
	client      *openai.Client
	baseURL     string
	model       string
	temperature float64
	maxTokens   int64
}

var _ gollem.LLMClient = &Client{}

type Option func(*Client)

// WithModel overrides the OpenRouter model slug
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenRouter API key is required")
	}

	c := &Client{
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	// The pipeline owns failure handling; the SDK must not retry on its own.
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(0),
	)
	c.client = &client

	return c, nil
}

func (c *Client) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &session{client: c}, nil
}

// GenerateEmbedding is not offered by this provider
func (c *Client) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, goerr.New("embeddings are not supported by the OpenRouter client")
}

type session struct {
	client *Client
}

func (s *session) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input))
	for _, in := range input {
		text, ok := in.(gollem.Text)
		if !ok {
			return nil, goerr.New("OpenRouter client accepts text input only")
		}
		messages = append(messages, openai.UserMessage(string(text)))
	}

	resp, err := s.client.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       s.client.model,
		Messages:    messages,
		Temperature: openai.Float(s.client.temperature),
		MaxTokens:   openai.Int(s.client.maxTokens),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "chat completion request failed", goerr.V("model", s.client.model))
	}

	if len(resp.Choices) == 0 {
		return nil, goerr.New("no completion choices returned", goerr.V("model", s.client.model))
	}

	return &gollem.Response{
		Texts: []string{resp.Choices[0].Message.Content},
	}, nil
}

func (s *session) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	resp, err := s.GenerateContent(ctx, input...)
	if err != nil {
		return nil, err
	}

	ch := make(chan *gollem.Response, 1)
	ch <- resp
	close(ch)
	return ch, nil
}

func (s *session) History() (*gollem.History, error) {
	return nil, nil
}

func (s *session) AppendHistory(*gollem.History) error {
	return goerr.New("history is not supported by the OpenRouter client")
}

func (s *session) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	var total int
	for _, in := range input {
		if text, ok := in.(gollem.Text); ok {
			total += len(text) / 4
		}
	}
	return total, nil
}

// Package completion sends chat completions to an OpenAI-compatible endpoint.
// Model, temperature, top_p and max_tokens call options are all written to
// the request body.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
)

// ErrNoTextContent is returned when a message has no text parts to send.
var ErrNoTextContent = errors.New("completion: message has no text content")

type Config struct {
	Token   string
	BaseURL string
	// Model is used when a call does not set llms.WithModel.
	Model      string
	HTTPClient *http.Client
}

// New creates a Client. An empty BaseURL uses the OpenAI API.
func New(c Config) *Client {
	oc := openai.DefaultConfig(c.Token)
	if c.BaseURL != "" {
		oc.BaseURL = c.BaseURL
	}
	if c.HTTPClient != nil {
		oc.HTTPClient = c.HTTPClient
	}
	return &Client{
		client: openai.NewClientWithConfig(oc),
		model:  c.Model,
	}
}

type Client struct {
	client *openai.Client
	model  string
}

var _ llms.Model = (*Client)(nil)

func (c *Client) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c, prompt, options...)
}

func (c *Client) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	req, err := c.newRequest(messages, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion: request failed: %w", err)
	}
	op := &llms.ContentResponse{
		Choices: make([]*llms.ContentChoice, len(resp.Choices)),
	}
	for i, choice := range resp.Choices {
		op.Choices[i] = &llms.ContentChoice{
			Content:    choice.Message.Content,
			StopReason: string(choice.FinishReason),
		}
	}
	return op, nil
}

func (c *Client) newRequest(messages []llms.MessageContent, opts llms.CallOptions) (req openai.ChatCompletionRequest, err error) {
	req.Model = opts.Model
	if req.Model == "" {
		req.Model = c.model
	}
	req.Temperature = float32(opts.Temperature)
	req.TopP = float32(opts.TopP)
	req.MaxTokens = opts.MaxTokens
	req.Messages = make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role, err := toRole(m.Role)
		if err != nil {
			return req, err
		}
		text, err := textOf(m)
		if err != nil {
			return req, err
		}
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: text,
		}
	}
	return req, nil
}

func toRole(t llms.ChatMessageType) (string, error) {
	switch t {
	case llms.ChatMessageTypeSystem:
		return openai.ChatMessageRoleSystem, nil
	case llms.ChatMessageTypeHuman, llms.ChatMessageTypeGeneric:
		return openai.ChatMessageRoleUser, nil
	case llms.ChatMessageTypeAI:
		return openai.ChatMessageRoleAssistant, nil
	default:
		return "", fmt.Errorf("completion: unsupported message role %q", t)
	}
}

// textOf concatenates the text parts of a message. Other part types are not
// sent to the endpoint.
func textOf(m llms.MessageContent) (string, error) {
	var text string
	var found bool
	for _, p := range m.Parts {
		if tc, ok := p.(llms.TextContent); ok {
			text += tc.Text
			found = true
		}
	}
	if !found {
		return "", ErrNoTextContent
	}
	return text, nil
}

package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/medchat/config"
	"github.com/a-h/medchat/prompt"
	"github.com/a-h/medchat/retrieval"
	"github.com/tmc/langchaingo/llms"
)

// ErrCompletion wraps every failure of the completion provider, including a
// response with no choices.
var ErrCompletion = errors.New("completion failed")

type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]retrieval.Entry, error)
}

// Timeouts bound each outbound call. Zero means no deadline beyond the
// caller's context.
type Timeouts struct {
	Retrieval  time.Duration
	Completion time.Duration
}

// New creates a Service. The retriever and model are shared by all requests.
func New(log *slog.Logger, retriever Retriever, llm llms.Model, timeouts Timeouts) *Service {
	return &Service{
		log:       log,
		retriever: retriever,
		llm:       llm,
		timeouts:  timeouts,
	}
}

type Service struct {
	log       *slog.Logger
	retriever Retriever
	llm       llms.Model
	timeouts  Timeouts
}

// Context retrieves the relevant entries for a query.
func (s *Service) Context(ctx context.Context, query string) ([]retrieval.Entry, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Retrieval)
	defer cancel()
	return s.retriever.Retrieve(ctx, query)
}

// Answer retrieves context for the query and asks the model to answer it.
// The model's text is returned unchanged.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	entries, err := s.Context(ctx, query)
	if err != nil {
		return "", err
	}

	chunks := retrieval.Chunks(entries)
	if skipped := len(entries) - len(chunks); skipped > 0 {
		s.log.Debug("skipped unrecognized retrieval results", slog.Int("skipped", skipped), slog.Int("results", len(entries)))
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	systemPrompt := prompt.BuildSystemPrompt(prompt.JoinContext(texts))

	ctx, cancel := withTimeout(ctx, s.timeouts.Completion)
	defer cancel()
	resp, err := s.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, query),
	},
		llms.WithModel(config.CompletionModel),
		llms.WithTemperature(config.Temperature),
		llms.WithTopP(config.TopP),
		llms.WithMaxTokens(config.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrCompletion)
	}
	return resp.Choices[0].Content, nil
}

// Kind names the stage that produced err, for logging.
func Kind(err error) string {
	switch {
	case errors.Is(err, retrieval.ErrRetrieval):
		return "retrieval"
	case errors.Is(err, ErrCompletion):
		return "completion"
	default:
		return "unknown"
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

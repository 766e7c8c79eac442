package embedder

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/embeddings/huggingface"
	hfllm "github.com/tmc/langchaingo/llms/huggingface"
	"github.com/tmc/langchaingo/llms/ollama"
)

type Provider string

const (
	ProviderOllama      Provider = "ollama"
	ProviderHuggingFace Provider = "huggingface"
)

// Default models produce the 384 dimension all-MiniLM-L6-v2 vectors the
// medical-chatbot index was built with. The index and the server must use the
// same provider: the Hugging Face model returns normalized vectors, and an
// Ollama build of the model may not.
const (
	DefaultOllamaModel      = "all-minilm"
	DefaultHuggingFaceModel = "sentence-transformers/all-MiniLM-L6-v2"
)

type Config struct {
	Provider Provider
	// Model overrides the provider's default model.
	Model string
	// OllamaURL is the Ollama server, used by ProviderOllama.
	OllamaURL string
	// HuggingFaceToken is used by ProviderHuggingFace. When empty the
	// HUGGINGFACEHUB_API_TOKEN environment variable is used.
	HuggingFaceToken string
	HTTPClient       *http.Client
}

func New(c Config) (embeddings.Embedder, error) {
	switch c.Provider {
	case ProviderOllama:
		model := c.Model
		if model == "" {
			model = DefaultOllamaModel
		}
		httpClient := c.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{}
		}
		opts := []ollama.Option{
			ollama.WithModel(model),
			ollama.WithHTTPClient(httpClient),
		}
		if c.OllamaURL != "" {
			opts = append(opts, ollama.WithServerURL(c.OllamaURL))
		}
		ec, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("embedder: failed to create ollama client: %w", err)
		}
		emb, err := embeddings.NewEmbedder(ec)
		if err != nil {
			return nil, fmt.Errorf("embedder: failed to create embedder: %w", err)
		}
		return emb, nil
	case ProviderHuggingFace, "":
		model := c.Model
		if model == "" {
			model = DefaultHuggingFaceModel
		}
		var llmOpts []hfllm.Option
		if c.HuggingFaceToken != "" {
			llmOpts = append(llmOpts, hfllm.WithToken(c.HuggingFaceToken))
		}
		client, err := hfllm.New(llmOpts...)
		if err != nil {
			return nil, fmt.Errorf("embedder: failed to create huggingface client: %w", err)
		}
		emb, err := huggingface.NewHuggingface(
			huggingface.WithClient(*client),
			huggingface.WithModel(model),
			huggingface.WithTask("feature-extraction"),
		)
		if err != nil {
			return nil, fmt.Errorf("embedder: failed to create embedder: %w", err)
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("embedder: unknown provider %q", c.Provider)
	}
}

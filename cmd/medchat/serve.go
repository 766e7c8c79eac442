package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/medchat/answer"
	"github.com/a-h/medchat/completion"
	"github.com/a-h/medchat/config"
	"github.com/a-h/medchat/embedder"
	contextpost "github.com/a-h/medchat/handlers/context/post"
	getpost "github.com/a-h/medchat/handlers/get/post"
	healthget "github.com/a-h/medchat/handlers/health/get"
	rootget "github.com/a-h/medchat/handlers/root/get"
	"github.com/a-h/medchat/retrieval"
	"github.com/rs/cors"
)

type ServeCommand struct {
	Credentials config.Credentials `embed:""`

	ListenAddr        string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"0.0.0.0:8080"`
	EmbeddingProvider string        `help:"The embedding provider, must match the one used to build the index." env:"EMBEDDING_PROVIDER" enum:"huggingface,ollama" default:"huggingface"`
	EmbeddingModel    string        `help:"Override the embedding model." env:"EMBEDDING_MODEL" default:""`
	OllamaURL         string        `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	HuggingFaceToken  string        `help:"The Hugging Face inference API token." env:"HUGGINGFACEHUB_API_TOKEN" default:""`
	RetrievalTimeout  time.Duration `help:"The maximum time to wait for the vector index." env:"RETRIEVAL_TIMEOUT" default:"15s"`
	CompletionTimeout time.Duration `help:"The maximum time to wait for the completion provider." env:"COMPLETION_TIMEOUT" default:"60s"`
	TLSCertFile       string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile        string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel          string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	if err = c.Credentials.Validate(); err != nil {
		return err
	}

	log.Info("creating embedder", slog.String("provider", c.EmbeddingProvider))
	httpClient := &http.Client{}
	emb, err := embedder.New(embedder.Config{
		Provider:         embedder.Provider(c.EmbeddingProvider),
		Model:            c.EmbeddingModel,
		OllamaURL:        c.OllamaURL,
		HuggingFaceToken: c.HuggingFaceToken,
		HTTPClient:       httpClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	log.Info("opening vector index", slog.String("index", config.IndexName))
	lookupCtx, cancel := context.WithTimeout(ctx, c.RetrievalTimeout)
	defer cancel()
	store, err := retrieval.NewPinecone(lookupCtx, retrieval.PineconeControlPlaneURL, c.Credentials.PineconeAPIKey, config.IndexName, emb)
	if err != nil {
		return fmt.Errorf("failed to open vector index: %w", err)
	}
	retriever := retrieval.New(store, config.RetrievalK)

	log.Info("creating LLM client", slog.String("model", config.CompletionModel))
	llmc := completion.New(completion.Config{
		Token:      c.Credentials.GitHubToken,
		BaseURL:    config.CompletionBaseURL,
		Model:      config.CompletionModel,
		HTTPClient: httpClient,
	})

	svc := answer.New(log, retriever, llmc, answer.Timeouts{
		Retrieval:  c.RetrievalTimeout,
		Completion: c.CompletionTimeout,
	})

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           newHandler(log, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}

type answerService interface {
	getpost.Answerer
	contextpost.Retriever
}

func newHandler(log *slog.Logger, svc answerService) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", rootget.New())
	mux.Handle("POST /get", getpost.New(log, svc))
	mux.Handle("POST /context", contextpost.New(log, svc))
	mux.Handle("GET /health", healthget.New())
	return cors.AllowAll().Handler(mux)
}

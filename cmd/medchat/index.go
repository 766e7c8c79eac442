package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/medchat/config"
	"github.com/a-h/medchat/embedder"
	"github.com/a-h/medchat/retrieval"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	indexChunkSize    = 500
	indexChunkOverlap = 20
)

type IndexCommand struct {
	Dir               string `help:"The directory to read PDF files from." env:"INDEX_DIR" default:"data"`
	PineconeAPIKey    string `help:"The Pinecone API key." env:"PINECONE_API_KEY" default:""`
	EmbeddingProvider string `help:"The embedding provider, the server must use the same one." env:"EMBEDDING_PROVIDER" enum:"huggingface,ollama" default:"huggingface"`
	EmbeddingModel    string `help:"Override the embedding model." env:"EMBEDDING_MODEL" default:""`
	OllamaURL         string `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	HuggingFaceToken  string `help:"The Hugging Face inference API token." env:"HUGGINGFACEHUB_API_TOKEN" default:""`
	DryRun            bool   `help:"Split the documents, but do not write them to the index." env:"DRY_RUN" default:"false"`
	LogLevel          string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c IndexCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	files, err := listPDFs(c.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("no PDF files found", slog.String("dir", c.Dir))
		return nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(indexChunkSize),
		textsplitter.WithChunkOverlap(indexChunkOverlap),
	)

	var add func(ctx context.Context, docs []schema.Document) error
	if !c.DryRun {
		if c.PineconeAPIKey == "" {
			return fmt.Errorf("%w: PINECONE_API_KEY is not set", config.ErrMissingCredential)
		}
		emb, err := embedder.New(embedder.Config{
			Provider:         embedder.Provider(c.EmbeddingProvider),
			Model:            c.EmbeddingModel,
			OllamaURL:        c.OllamaURL,
			HuggingFaceToken: c.HuggingFaceToken,
			HTTPClient:       &http.Client{},
		})
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		store, err := retrieval.NewPinecone(ctx, retrieval.PineconeControlPlaneURL, c.PineconeAPIKey, config.IndexName, emb)
		if err != nil {
			return err
		}
		add = func(ctx context.Context, docs []schema.Document) error {
			_, err := store.AddDocuments(ctx, docs)
			return err
		}
	}

	var total int
	for _, fileName := range files {
		docs, err := loadPDF(ctx, fileName, splitter)
		if err != nil {
			return err
		}
		log.Info("split document", slog.String("source", fileName), slog.Int("chunks", len(docs)))
		total += len(docs)
		if c.DryRun {
			log.Info("skipping index write in dry run mode", slog.String("source", fileName))
			continue
		}
		if err = add(ctx, docs); err != nil {
			return fmt.Errorf("failed to add %q to index: %w", fileName, err)
		}
	}
	log.Info("indexing complete", slog.Int("files", len(files)), slog.Int("chunks", total), slog.Bool("dryRun", c.DryRun))
	return nil
}

// listPDFs returns the paths of all .pdf files under dir, sorted.
func listPDFs(dir string) (paths []string, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list PDF files in %q: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func loadPDF(ctx context.Context, fileName string, splitter textsplitter.TextSplitter) (docs []schema.Document, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pdf := documentloaders.NewPDF(f, fi.Size())
	docs, err = pdf.LoadAndSplit(ctx, splitter)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF %q: %w", fileName, err)
	}
	return withSource(docs, fileName), nil
}

// withSource sets the source metadata on each document, dropping chunks with no text.
func withSource(docs []schema.Document, source string) []schema.Document {
	op := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.PageContent) == "" {
			continue
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]any{}
		}
		doc.Metadata["source"] = source
		op = append(op, doc)
	}
	return op
}

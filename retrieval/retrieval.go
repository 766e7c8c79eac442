package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

// ErrRetrieval wraps every failure of the vector index search.
var ErrRetrieval = errors.New("retrieval failed")

// Entry is a single search result. It is either a Chunk or Unrecognized.
type Entry interface {
	entry()
}

// Chunk is a passage of source text returned by the index.
type Chunk struct {
	Text   string
	Source string
	Score  float32
}

func (Chunk) entry() {}

// Unrecognized is a search result that could not be read as a passage.
type Unrecognized struct {
	Reason   string
	Metadata map[string]any
}

func (Unrecognized) entry() {}

// Chunks returns the valid passages in their original order.
func Chunks(entries []Entry) (chunks []Chunk) {
	for _, e := range entries {
		if c, ok := e.(Chunk); ok {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

// New creates a Retriever that runs a similarity search for the top k
// documents in the store.
func New(store vectorstores.VectorStore, k int) Retriever {
	return Retriever{
		r: vectorstores.ToRetriever(store, k),
	}
}

// NewFromRetriever wraps an existing langchaingo retriever.
func NewFromRetriever(r schema.Retriever) Retriever {
	return Retriever{r: r}
}

type Retriever struct {
	r schema.Retriever
}

// Retrieve returns the results in the order the index ranked them.
func (r Retriever) Retrieve(ctx context.Context, query string) ([]Entry, error) {
	docs, err := r.r.GetRelevantDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	entries := make([]Entry, len(docs))
	for i, doc := range docs {
		entries[i] = toEntry(doc)
	}
	return entries, nil
}

func toEntry(doc schema.Document) Entry {
	if strings.TrimSpace(doc.PageContent) == "" {
		return Unrecognized{
			Reason:   "document has no page content",
			Metadata: doc.Metadata,
		}
	}
	source, _ := doc.Metadata["source"].(string)
	return Chunk{
		Text:   doc.PageContent,
		Source: source,
		Score:  doc.Score,
	}
}

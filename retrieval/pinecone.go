package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/jsonapi"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/vectorstores/pinecone"
)

// PineconeControlPlaneURL is the Pinecone API used to describe indexes.
const PineconeControlPlaneURL = "https://api.pinecone.io"

const pineconeAPIVersion = "2024-07"

type indexDescription struct {
	Name   string `json:"name"`
	Host   string `json:"host"`
	Status struct {
		Ready bool   `json:"ready"`
		State string `json:"state"`
	} `json:"status"`
}

// LookupIndexHost asks the Pinecone control plane for the data plane host of
// an existing index. The index is never created.
func LookupIndexHost(ctx context.Context, controlPlaneURL, apiKey, indexName string) (host string, err error) {
	url, err := jsonapi.URL(controlPlaneURL).Path("indexes", indexName).String()
	if err != nil {
		return "", fmt.Errorf("retrieval: invalid control plane URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("retrieval: failed to create request: %w", err)
	}
	res, err := jsonapi.Raw(req,
		jsonapi.WithRequestHeader("Api-Key", apiKey),
		jsonapi.WithRequestHeader("X-Pinecone-API-Version", pineconeAPIVersion))
	if err != nil {
		return "", fmt.Errorf("retrieval: failed to describe index %q: %w", indexName, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return "", jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}
	}
	var desc indexDescription
	if err = json.NewDecoder(res.Body).Decode(&desc); err != nil {
		return "", fmt.Errorf("retrieval: failed to decode index description: %w", err)
	}
	if desc.Host == "" {
		return "", fmt.Errorf("retrieval: index %q has no host", indexName)
	}
	return desc.Host, nil
}

// NewPinecone opens the named Pinecone index as a vector store.
func NewPinecone(ctx context.Context, controlPlaneURL, apiKey, indexName string, embedder embeddings.Embedder) (store pinecone.Store, err error) {
	host, err := LookupIndexHost(ctx, controlPlaneURL, apiKey, indexName)
	if err != nil {
		return store, err
	}
	return pinecone.New(
		pinecone.WithHost(host),
		pinecone.WithAPIKey(apiKey),
		pinecone.WithEmbedder(embedder),
	)
}

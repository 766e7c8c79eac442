package config

import (
	"errors"
	"fmt"
)

// IndexName is the pre-existing Pinecone index that holds the medical corpus.
const IndexName = "medical-chatbot"

// Completion provider settings.
const (
	CompletionBaseURL = "https://models.github.ai/inference"
	CompletionModel   = "openai/gpt-4o"
	Temperature       = 0.7
	TopP              = 1.0
	MaxTokens         = 1000
)

// RetrievalK is the number of chunks fetched for every query.
const RetrievalK = 3

// ErrMissingCredential is returned by Validate for each unset credential.
var ErrMissingCredential = errors.New("config: missing credential")

// Credentials are read from the environment once at startup.
type Credentials struct {
	GitHubToken    string `help:"The token for the GitHub Models completion endpoint." env:"GITHUB_TOKEN" default:""`
	PineconeAPIKey string `help:"The Pinecone API key." env:"PINECONE_API_KEY" default:""`
}

func (c Credentials) Validate() error {
	var errs []error
	if c.GitHubToken == "" {
		errs = append(errs, fmt.Errorf("%w: GITHUB_TOKEN is not set", ErrMissingCredential))
	}
	if c.PineconeAPIKey == "" {
		errs = append(errs, fmt.Errorf("%w: PINECONE_API_KEY is not set", ErrMissingCredential))
	}
	return errors.Join(errs...)
}

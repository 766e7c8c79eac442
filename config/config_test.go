package config

import (
	"errors"
	"strings"
	"testing"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name        string
		creds       Credentials
		expectErr   bool
		expectNames []string
	}{
		{
			name:  "both credentials present is valid",
			creds: Credentials{GitHubToken: "gh", PineconeAPIKey: "pc"},
		},
		{
			name:        "missing GitHub token is an error",
			creds:       Credentials{PineconeAPIKey: "pc"},
			expectErr:   true,
			expectNames: []string{"GITHUB_TOKEN"},
		},
		{
			name:        "missing Pinecone key is an error",
			creds:       Credentials{GitHubToken: "gh"},
			expectErr:   true,
			expectNames: []string{"PINECONE_API_KEY"},
		},
		{
			name:        "both missing reports both",
			expectErr:   true,
			expectNames: []string{"GITHUB_TOKEN", "PINECONE_API_KEY"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if !tt.expectErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMissingCredential) {
				t.Fatalf("expected ErrMissingCredential, got %v", err)
			}
			for _, name := range tt.expectNames {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("expected error to mention %s, got %q", name, err.Error())
				}
			}
		})
	}
}

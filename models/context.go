package models

type ContextPostRequest struct {
	Text string `json:"text" yaml:"text"`
}

type ContextPostResponse struct {
	Results []ContextDocument `json:"results" yaml:"results"`
}

// ContextDocument is a single retrieval result. Unrecognized results carry a
// Reason instead of Text.
type ContextDocument struct {
	Text       string         `json:"text,omitempty" yaml:"text,omitempty"`
	Source     string         `json:"source,omitempty" yaml:"source,omitempty"`
	Score      float32        `json:"score,omitempty" yaml:"score,omitempty"`
	Recognized bool           `json:"recognized" yaml:"recognized"`
	Reason     string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

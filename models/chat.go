package models

type ChatMessageType string

const (
	ChatMessageTypeSystem ChatMessageType = "system"
	ChatMessageTypeHuman  ChatMessageType = "human"
	ChatMessageTypeAI     ChatMessageType = "ai"
)

// ChatMessage is a line in the terminal chat transcript. The server itself
// keeps no conversation state.
type ChatMessage struct {
	Type    ChatMessageType `json:"type"`
	Content string          `json:"content"`
}

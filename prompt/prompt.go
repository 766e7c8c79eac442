package prompt

import "strings"

const contextPlaceholder = "{context}"

const systemTemplate = "You are a Medical assistant for question-answering tasks. " +
	"Use the following pieces of retrieved context to answer the question. " +
	"If you don't know the answer, say that you don't know. " +
	"Use three sentences maximum and keep the answer concise.\n\n" +
	contextPlaceholder

// BuildSystemPrompt inserts the retrieved context into the system template.
// An empty context still yields the full instructions.
func BuildSystemPrompt(context string) string {
	return strings.Replace(systemTemplate, contextPlaceholder, context, 1)
}

// JoinContext joins passage texts with a blank line, keeping their order.
func JoinContext(texts []string) string {
	return strings.Join(texts, "\n\n")
}

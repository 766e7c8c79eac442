package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/medchat/client"
	"github.com/a-h/medchat/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const chatGreeting = "Ask a medical question. Each question is answered on its own, earlier messages are not sent to the server."

type ChatCommand struct {
	ServerURL string `help:"The URL of the medchat server." env:"MEDCHAT_SERVER_URL" default:"http://localhost:8080"`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mc := client.New(c.ServerURL)
	ask := func(ctx context.Context, msg string) (string, error) {
		return mc.GetPost(ctx, models.GetPostRequest{Msg: msg})
	}

	p := tea.NewProgram(newChatModel(ctx, ask))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(1).Padding(1)

// answerMsg is sent when the server has replied to the message at index.
type answerMsg struct {
	index  int
	answer string
}

type errMsg struct {
	index int
	err   error
}

type askFunc func(ctx context.Context, msg string) (string, error)

type chatModel struct {
	viewport viewport.Model
	textarea textarea.Model
	ctx      context.Context
	ask      askFunc
	messages []models.ChatMessage
	err      error
}

func newChatModel(ctx context.Context, ask askFunc) chatModel {
	ta := textarea.New()
	ta.Placeholder = "What is hypertension?"
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 500

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	m := chatModel{
		ctx:      ctx,
		textarea: ta,
		viewport: viewport.New(80, 20),
		ask:      ask,
		messages: []models.ChatMessage{
			{Type: models.ChatMessageTypeSystem, Content: chatGreeting},
		},
	}
	m.render()
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m chatModel) askCmd(index int, msg string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.ask(m.ctx, msg)
		if err != nil {
			return errMsg{index: index, err: err}
		}
		return answerMsg{index: index, answer: answer}
	}
}

var messageTypeToStyle = map[models.ChatMessageType]lipgloss.Style{
	models.ChatMessageTypeSystem: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).MaxWidth(90).Background(Background).Foreground(Green),
	models.ChatMessageTypeHuman:  lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	models.ChatMessageTypeAI:     lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Cyan),
}

var messageTypeToIcon = map[models.ChatMessageType]string{
	models.ChatMessageTypeSystem: "🩺",
	models.ChatMessageTypeHuman:  "🙋",
	models.ChatMessageTypeAI:     "💊",
}

func formatMessage(msg models.ChatMessage) string {
	style, ok := messageTypeToStyle[msg.Type]
	if !ok {
		return msg.Content
	}
	icon, ok := messageTypeToIcon[msg.Type]
	if !ok {
		icon = "🤷"
	}
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+msg.Content), 80)
	return style.Render(wrapped)
}

func (m *chatModel) render() {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Medical Chatbot"))
	sb.WriteString("\n")
	for _, cm := range m.messages {
		sb.WriteString(formatMessage(cm))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(Red).Render(m.err.Error()))
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		m.messages[msg.index].Content = msg.answer
		m.render()
		return m, nil
	case errMsg:
		m.messages[msg.index].Content = "…"
		m.err = msg.err
		m.render()
		return m, nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		m.render()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" {
				// Don't send empty messages.
				return m, nil
			}
			m.textarea.Reset()
			m.err = nil
			m.messages = append(m.messages,
				models.ChatMessage{Type: models.ChatMessageTypeHuman, Content: v},
				models.ChatMessage{Type: models.ChatMessageTypeAI, Content: "…"},
			)
			m.render()
			return m, m.askCmd(len(m.messages)-1, v)
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}
	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m chatModel) View() string {
	return fmt.Sprintf("%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n\n"
}

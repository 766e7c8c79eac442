package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the medical chatbot server."`
	Ask     AskCommand     `cmd:"ask" help:"Ask a running server a question."`
	Context ContextCommand `cmd:"context" help:"Get the passages retrieved for a piece of text."`
	Chat    ChatCommand    `cmd:"chat" help:"Chat with a running server in the terminal."`
	Index   IndexCommand   `cmd:"index" help:"Load PDF documents into the vector index."`
	Version VersionCommand `cmd:"version" help:"Print the version of medchat."`
}

func main() {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}

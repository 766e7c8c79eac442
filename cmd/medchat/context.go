package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/a-h/medchat/client"
	"github.com/a-h/medchat/models"
	"gopkg.in/yaml.v3"
)

type ContextCommand struct {
	ServerURL string `help:"The URL of the medchat server." env:"MEDCHAT_SERVER_URL" default:"http://localhost:8080"`
	Text      string `help:"The text to send."`
	Format    string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c ContextCommand) Run(ctx context.Context) (err error) {
	resp, err := client.New(c.ServerURL).ContextPost(ctx, models.ContextPostRequest{
		Text: c.Text,
	})
	if err != nil {
		return err
	}
	return writeContext(os.Stdout, resp, c.Format, c.Pretty)
}

func writeContext(w io.Writer, resp models.ContextPostResponse, format string, pretty bool) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

package main

import (
	"context"
	"fmt"

	"github.com/a-h/medchat/client"
	"github.com/a-h/medchat/models"
)

type AskCommand struct {
	ServerURL string `help:"The URL of the medchat server." env:"MEDCHAT_SERVER_URL" default:"http://localhost:8080"`
	Query     string `help:"The question to ask." short:"q" required:""`
}

func (c AskCommand) Run(ctx context.Context) (err error) {
	answer, err := client.New(c.ServerURL).GetPost(ctx, models.GetPostRequest{
		Msg: c.Query,
	})
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/a-h/medchat"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(medchat.Version)
	return nil
}

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/deppfellow/webkit/internal/cmd"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.NewRootCmd(), fang.WithVersion(cmd.Version)); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/futig/interview-agent/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	// A missing .env file is not an error; real environment variables win.
	_ = godotenv.Load()

	c := newCLI()
	if err := c.execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprint(os.Stderr, FormatUserError(err, c.styles))
		os.Exit(1)
	}
}

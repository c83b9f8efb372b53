package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/fomoduct/internal/app"
	"github.com/andy/fomoduct/internal/cli"
)

func main() {
	// If the user asked for help, avoid initializing the full app (which opens the database)
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" {
			skipInit = true
			break
		}
	}

	ctx := context.Background()

	if !skipInit {
		a, err := app.New(ctx, app.Options{ConfigPath: os.Getenv("FOMODUCT_CONFIG")})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"tiendanube/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config.Load(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "nube: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"tiendanube/pkg/config"
	"tiendanube/pkg/db"
)

func main() {
	cfg := config.Load()

	// Uses DIRECT_URL when set.
	if err := db.Migrate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}

	// Make sure the runtime connection works too. DSNs are never printed.
	pool, err := db.Open(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime db open failed: %v\n", err)
		os.Exit(1)
	}
	pool.Close()

	fmt.Println("migrations applied")
}

package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/sagarc03/showoff/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Port: %d, Theme: %s\n", cfg.Server.Port, cfg.Viewer.Theme)
	// Output: Port: 5709, Theme: default
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil)

	// Store config in context
	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved database: %s\n", retrieved.Database.Type)
	// Output: Retrieved database: sqlite
}

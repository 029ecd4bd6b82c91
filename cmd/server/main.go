// Package main implements the entry point for the vidoc API server, which
// accepts uploaded screen-capture videos and turns them into generated
// markdown documentation pages via an external generative AI service.
package main

import (
	"context"
	"log"
	"os"
)

// main wires configuration, logging, and the application together, then runs
// the HTTP server until shutdown.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"log"

	"github.com/revisitly/revisitly/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ revisitly failed to start: %v", err)
	}
}

package main

import (
	"log"

	"github.com/genguard/genguard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("genguard: %v", err)
	}
}

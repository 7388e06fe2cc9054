// Package main - stockd CLI
//
// Usage:
//
//	go run ./cmd/stockd serve
//	go run ./cmd/stockd fetch-prices
//	go run ./cmd/stockd seed-stocks
package main

import (
	"os"

	"github.com/jaksa-v/stock-tracker/cmd/stockd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for termtune.
//
// Build:
//
//	go build -o build/termtune ./cmd
//
// Run:
//
//	./build/termtune
package main

import "github.com/tejashwikalptaru/termtune/internal/cli"

func main() {
	cli.Execute()
}

// Package main is the entry point for the eg CLI tool.
package main

import (
	"github.com/eduguard/eg/internal/cmd"
)

func main() {
	cmd.Execute()
}

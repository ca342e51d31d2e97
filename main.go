package main

import (
	"os"

	"github.com/taskreflect/taskreflect/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

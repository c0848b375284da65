package main

import (
	"os"

	"github.com/complyo-io/complyo-engine/pkg/landing"
)

func main() {
	if err := landing.Command().Execute(); err != nil {
		os.Exit(1)
	}
}

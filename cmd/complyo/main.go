package main

import (
	"os"

	"github.com/complyo-io/complyo-engine/pkg/cli"
)

func main() {
	if err := cli.Command().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/worker"
)

func main() {
	if err := worker.Command().Execute(); err != nil {
		os.Exit(1)
	}
}

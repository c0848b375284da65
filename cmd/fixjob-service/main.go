package main

import (
	"os"

	"github.com/complyo-io/complyo-engine/pkg/fixjob"
)

func main() {
	if err := fixjob.ServiceCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/yourorg/pmctl/internal/codacli"
)

func main() {
	if err := codacli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

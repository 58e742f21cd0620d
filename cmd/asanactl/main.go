package main

import (
	"fmt"
	"os"

	"github.com/yourorg/pmctl/internal/asanacli"
)

func main() {
	if err := asanacli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

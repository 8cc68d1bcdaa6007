package main

import (
	"fmt"
	"os"

	"github.com/nexlify/esbridge/cmd/esbridge/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

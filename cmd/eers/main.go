package main

import (
	"exobio-route-sorter/internal/cli"
	"fmt"
	"os"
)

var version = "dev"

func main() {
	root := cli.NewRootCommand(version, cli.Deps{In: os.Stdin, Out: os.Stdout})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import "github.com/acrovato/gmshcfd/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/goliatone/go-formdesigner/internal/cli"

func main() {
	cli.Execute()
}

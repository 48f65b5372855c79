package main

import "github.com/lewallen4/flightplight/internal/cli"

func main() {
	cli.Execute()
}

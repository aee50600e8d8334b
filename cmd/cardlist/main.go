package main

import "github.com/aalvaropc/cardlist/internal/cli"

func main() {
	cli.Execute()
}

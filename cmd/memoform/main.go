package main

import "github.com/aalvaropc/memoform/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/sadopc/corkboard/internal/cli"

func main() {
	cli.Execute()
}

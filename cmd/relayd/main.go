package main

import "github.com/LeJamon/goPriceRelay/internal/cli"

func main() {
	cli.Execute()
}

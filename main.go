package main

import (
	"github.com/painelfin/painelgo/internal/cli"
)

func main() {
	cli.Run()
}

package main

import (
	"os"

	"github.com/kisun-bit/disktype/cmd/disktype/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

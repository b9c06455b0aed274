package main

import (
	"os"

	"github.com/autostruct/autostruct/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

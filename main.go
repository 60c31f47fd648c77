package main

import (
	"os"

	"github.com/sgoswami/tutorbox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

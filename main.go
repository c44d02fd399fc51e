package main

import (
	"os"

	"github.com/r-sathish-02/Knowledge-Navigator-App/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

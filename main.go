package main

import (
	"os"

	"github.com/quizmd/quizmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

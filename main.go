package main

import (
	"os"

	"github.com/profilematch/profile-match/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/Jim-Karanja/ubuntu-dev-manager/cmd"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}

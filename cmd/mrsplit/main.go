package main

import (
	"fmt"
	"os"

	"github.com/mmynk/mrsplit/internal/cli"
	"github.com/mmynk/mrsplit/internal/config"
	"github.com/mmynk/mrsplit/pkg/logging"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

func main() {
	// Setup logging until the configured level is known
	logging.Setup()

	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cli.Version = Version
	cli.CommitSHA = CommitSHA
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

// Package main is the entry point for the jira-attach CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// The container is built before cobra parses flags, so the profile
	// is picked out of the arguments here.
	container, err := app.New(profileArg(os.Args[1:]), version)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// profileArg returns the value of --profile in args, or "".
func profileArg(args []string) string {
	flag := "--" + cli.ProfileFlag
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == flag && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, flag+"="):
			return strings.TrimPrefix(arg, flag+"=")
		}
	}
	return ""
}

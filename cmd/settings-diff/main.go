// Package main provides the settings-diff CLI that compares a JSON settings
// schema between two tags of a GitHub-hosted repository and prints a markdown
// report of added, changed and removed keys.
//
// Usage:
//
//	settings-diff <repository_url> <configuration_file_path> <configuration_jq_query> <tag_from> <tag_to>
//
// The report goes to stdout; diagnostics go to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRoot(os.Getenv).Command()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

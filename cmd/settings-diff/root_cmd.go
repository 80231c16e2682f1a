package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"settings-diff/internal/schema"
	"settings-diff/internal/settingsdiff"
)

const (
	EnvVariableJQ       = "SETTINGS_DIFF_JQ"
	EnvVariableLogLevel = "SETTINGS_DIFF_LOG_LEVEL"
)

type rootOpts struct {
	getenv func(string) string
	client *http.Client
}

func newRoot(getenv func(string) string) *rootOpts {
	return &rootOpts{getenv: getenv}
}

var rootLongHelp = strings.TrimSpace(fmt.Sprintf(`
settings-diff prints the differences in a JSON settings schema between two tags.

It downloads <repository_url>/archive/<tag>.zip for both tags, reads
<configuration_file_path> from each archive (applying a sibling .nls.json
translations file when present), flattens both with the jq query
<configuration_jq_query> and prints a markdown report of added, changed and
removed keys together with the full unified diff.

Environment:
  %s        path of the jq binary (default %q)
  %s  log level: debug, info, warn, error (default "info")

Example:
  settings-diff https://github.com/microsoft/pyright \
    /packages/vscode-pyright/package.json \
    '.contributes.configuration.properties' 1.1.380 1.1.390
`, EnvVariableJQ, schema.DefaultJQPath, EnvVariableLogLevel))

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "settings-diff <repository_url> <configuration_file_path> <configuration_jq_query> <tag_from> <tag_to>",
		Short:             "Checks for differences in configuration between two tags",
		Long:              rootLongHelp,
		Args:              cobra.ExactArgs(5),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.PersistentPreRunE,
		RunE:              opts.RunE,
	}
	return cmd
}

func (opts *rootOpts) PersistentPreRunE(_ *cobra.Command, _ []string) error {
	level := opts.getenv(EnvVariableLogLevel)
	if level == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "%s", EnvVariableLogLevel)
	}
	logrus.SetLevel(lvl)
	return nil
}

func (opts *rootOpts) RunE(cmd *cobra.Command, args []string) error {
	cfg := configFromArgs(args)
	runner := &settingsdiff.Runner{
		Client:    opts.client,
		Flattener: schema.JQ{Path: opts.jqPath()},
	}
	return runner.Run(cmd.Context(), cfg, cmd.OutOrStdout())
}

func (opts *rootOpts) jqPath() string {
	if p := opts.getenv(EnvVariableJQ); p != "" {
		return p
	}
	return schema.DefaultJQPath
}

func configFromArgs(args []string) settingsdiff.Config {
	return settingsdiff.Config{
		RepositoryURL: args[0],
		ConfigPath:    args[1],
		Query:         args[2],
		FromTag:       args[3],
		ToTag:         args[4],
	}
}

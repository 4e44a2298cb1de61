package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-digger/internal/browser"
	"github.com/handiism/soundcloud-digger/internal/config"
	"github.com/handiism/soundcloud-digger/internal/dig"
	"github.com/handiism/soundcloud-digger/internal/http"
	"github.com/handiism/soundcloud-digger/internal/model"
	"github.com/handiism/soundcloud-digger/internal/tui"
)

// app carries the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile  string
	logLevel string

	settings *config.Settings
	logger   *log.Logger

	// swapped in tests
	newFetcher func(s *config.Settings, logger *log.Logger) (dig.Fetcher, func())
	launcher   browser.Launcher
	pick       func(s *model.Summary) (string, error)

	// interactive reports whether the category picker can be shown.
	interactive bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		newFetcher: defaultFetcher,
		launcher:   browser.SystemLauncher{},
		pick: func(s *model.Summary) (string, error) {
			return tui.Pick(s)
		},
		interactive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr).command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "soundcloud-digger",
		Short: "Find where the tracks of a SoundCloud playlist can be bought or downloaded",
		Long: `soundcloud-digger reads a saved SoundCloud playlist page, visits every track
page and sorts the purchase and download links it finds by storefront.

Example usage:
  soundcloud-digger dig playlist.html               # Write soundcloud_links.json
  soundcloud-digger dig playlist.html --export yaml # Write soundcloud_links.yaml
  soundcloud-digger open soundcloud_links.json      # Pick a category and open its links
  soundcloud-digger open a.json b.json -c bandcamp  # Merge two runs, open Bandcamp links`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .soundcloud-digger.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error or fatal")

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.AddCommand(a.digCommand(), a.openCommand(), a.configCommand())

	return root
}

// setup loads the settings and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = a.logLevel
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	a.settings = settings
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Level:  settings.Level(),
		Prefix: "digger",
	})

	if file := settings.File(); file != "" {
		a.logger.Debug("Loaded settings", "file", file)
	}
	return nil
}

func defaultFetcher(s *config.Settings, logger *log.Logger) (dig.Fetcher, func()) {
	if s.Render == config.RenderBrowser {
		b := http.NewBrowserFetcher(s.UserAgent)
		return b, b.Close
	}
	return http.NewClient(s.ClientOptions(logger)...), func() {}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/handiism/soundcloud-digger/internal/config"
	"github.com/handiism/soundcloud-digger/internal/dig"
	"github.com/handiism/soundcloud-digger/internal/export"
	"github.com/handiism/soundcloud-digger/internal/model"
	"github.com/handiism/soundcloud-digger/internal/report"
	"github.com/handiism/soundcloud-digger/internal/soundcloud"
	"github.com/handiism/soundcloud-digger/internal/summary"
)

type digFlags struct {
	export    string
	output    string
	render    string
	delay     float64
	timeout   float64
	maxTracks int
}

func (a *app) digCommand() *cobra.Command {
	var flags digFlags

	cmd := &cobra.Command{
		Use:   "dig <playlist.html>",
		Short: "Collect store and download links for every track of a saved playlist page",
		Long: `Reads a playlist page saved from the browser (scroll to the end first so
every track is loaded), fetches each track page and groups the links found
there by storefront: hypeddit, bandcamp, beatport, junodownload, others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd.Flags(), a.settings); err != nil {
				return err
			}
			return a.runDig(cmd.Context(), args[0])
		},
	}

	defaults := config.DefaultSettings()
	cmd.Flags().StringVarP(&flags.export, "export", "e", defaults.ExportFormat,
		"export format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "export file (default soundcloud_links.<format>)")
	cmd.Flags().StringVar(&flags.render, "render", defaults.Render, "page fetcher: http or browser")
	cmd.Flags().Float64Var(&flags.delay, "delay", defaults.Delay, "seconds to wait between track pages")
	cmd.Flags().Float64Var(&flags.timeout, "timeout", defaults.Timeout, "seconds before a track page request times out")
	cmd.Flags().IntVar(&flags.maxTracks, "max-tracks", defaults.MaxTracks, "process at most this many tracks (-1 for all)")

	return cmd
}

// apply copies explicitly set flags over the loaded settings.
func (f digFlags) apply(fs *pflag.FlagSet, s *config.Settings) error {
	if fs.Changed("export") {
		s.ExportFormat = f.export
	}
	if fs.Changed("output") {
		s.OutputPath = f.output
	}
	if fs.Changed("render") {
		s.Render = f.render
	}
	if fs.Changed("delay") {
		s.Delay = f.delay
	}
	if fs.Changed("timeout") {
		s.Timeout = f.timeout
	}
	if fs.Changed("max-tracks") {
		s.MaxTracks = f.maxTracks
	}
	return s.Validate()
}

func (a *app) runDig(ctx context.Context, path string) error {
	s := a.settings

	playlist, err := soundcloud.NewExtractor(a.logger).ExtractFile(path)
	if err != nil {
		return fmt.Errorf("could not read playlist: %w", err)
	}

	urls := dig.Limit(playlist.TrackURLs, s.MaxTracks)
	if len(urls) == 0 && len(playlist.TrackURLs) > 0 {
		a.logger.Info("Track limit excludes every track", "found", len(playlist.TrackURLs), "max_tracks", s.MaxTracks)
		return nil
	}
	if len(urls) == 0 {
		a.logger.Warn("No track links found", "file", path)
		a.logger.Info("Tip: scroll the playlist to the end so every track is loaded, then save the complete page")
		return nil
	}
	if declared := playlist.DeclaredCount; declared != nil && *declared > 0 && *declared != len(urls) {
		a.logger.Warn(fmt.Sprintf("Collected %d tracks but playlist declares %d", len(urls), *declared))
	} else {
		a.logger.Info(fmt.Sprintf("Collected %d tracks from %s", len(urls), path))
	}

	fetcher, closeFetcher := a.newFetcher(s, a.logger)
	defer closeFetcher()

	progress := newProgress(a.stderr, a.logger)
	manager, err := dig.NewManager(fetcher, s.DigOptions(), progress.handle)
	if err != nil {
		return err
	}

	progress.start()
	results, runErr := manager.Run(ctx, urls)
	progress.stop()

	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
			return runErr
		}
		a.logger.Warn("Interrupted, summarizing the tracks processed so far", "processed", len(results), "total", len(urls))
	}

	sum := summary.Aggregate(results)

	if format := s.Format(); format != export.FormatNone {
		written, err := export.Write(context.WithoutCancel(ctx), sum, format, s.OutputPath)
		if err != nil {
			a.logger.Error("Could not export summary", "err", err)
		} else {
			a.logger.Info("Exported summary", "file", written, "format", format)
		}
	}

	if err := report.Write(a.stdout, sum); err != nil {
		return err
	}
	return runErr
}

// progress shows a spinner while tracks are fetched and logs the events
// worth keeping above it.
type progress struct {
	spinner *spinner.Spinner
	logger  *log.Logger
}

func newProgress(w io.Writer, logger *log.Logger) *progress {
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, opt)
	s.Suffix = " Fetching tracks"
	return &progress{spinner: s, logger: logger}
}

func (p *progress) start() { p.spinner.Start() }

func (p *progress) stop() { p.spinner.Stop() }

func (p *progress) handle(event dig.ProgressEvent) {
	switch event.Level {
	case dig.LevelVerbose:
		p.spinner.Lock()
		p.spinner.Suffix = " " + event.Message
		p.spinner.Unlock()
		if p.logger.GetLevel() <= log.DebugLevel {
			p.above(func() { p.logger.Debug(event.Message) })
		}
	case dig.LevelWarning:
		p.above(func() { p.logger.Warn(event.Message) })
	case dig.LevelError:
		p.above(func() { p.logger.Error(event.Message) })
	default:
		if len(event.Categories) == 0 {
			p.above(func() { p.logger.Info(event.Message) })
			return
		}
		p.above(func() { p.logger.Info(event.Message, "stores", categoryList(event.Categories)) })
	}
}

// above runs fn with the spinner paused so log lines are not overwritten.
func (p *progress) above(fn func()) {
	if p.spinner.Active() {
		p.spinner.Stop()
		defer p.spinner.Start()
	}
	fn()
}

func categoryList(categories []model.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

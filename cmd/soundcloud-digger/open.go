package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-digger/internal/browser"
	"github.com/handiism/soundcloud-digger/internal/model"
	"github.com/handiism/soundcloud-digger/internal/report"
	"github.com/handiism/soundcloud-digger/internal/summary"
	"github.com/handiism/soundcloud-digger/internal/tui"
)

type openFlags struct {
	category string
	browser  string
	noOpen   bool
	skip     int
	limit    int
}

func (a *app) openCommand() *cobra.Command {
	var flags openFlags

	cmd := &cobra.Command{
		Use:   "open <summary.json>...",
		Short: "Open the links of an exported summary in a browser",
		Long: `Loads one or more JSON summaries written by dig, merges them, prints the
link count per category and opens the links of the chosen category. Without
--category an interactive picker is shown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("browser") {
				a.settings.Browser = flags.browser
				if err := a.settings.Validate(); err != nil {
					return err
				}
			}
			return a.runOpen(cmd.Context(), args, flags, cmd.Flags().Changed("category"))
		},
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", browser.AllCategories,
		"category to open: "+strings.Join(browser.CategoryChoices(), ", "))
	cmd.Flags().StringVarP(&flags.browser, "browser", "b", browser.DefaultBrowser,
		"browser: "+strings.Join(browser.BrowserNames(), ", "))
	cmd.Flags().BoolVar(&flags.noOpen, "no-open", false, "list the selected links instead of opening them")
	cmd.Flags().IntVar(&flags.skip, "skip", 0, "skip this many links first")
	cmd.Flags().IntVar(&flags.limit, "limit", -1, "open at most this many links (-1 for all)")

	return cmd
}

func (a *app) runOpen(ctx context.Context, paths []string, flags openFlags, categoryGiven bool) error {
	summaries := make([]*model.Summary, 0, len(paths))
	for _, path := range paths {
		s, err := summary.LoadFile(path)
		if err != nil {
			return err
		}
		a.logger.Debug("Loaded summary", "file", path, "links", s.Total())
		summaries = append(summaries, s)
	}
	merged := summary.Merge(summaries...)

	if err := report.Write(a.stdout, merged); err != nil {
		return err
	}

	category := flags.category
	if !categoryGiven && !flags.noOpen && a.interactive {
		chosen, err := a.pick(merged)
		if errors.Is(err, tui.ErrCancelled) {
			a.logger.Info("Nothing opened")
			return nil
		}
		if err != nil {
			return err
		}
		category = chosen
	}

	items, err := browser.Select(merged, category, flags.skip, flags.limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.logger.Info("No links to open", "category", category, "skip", flags.skip, "limit", flags.limit)
		return nil
	}

	if flags.noOpen {
		for _, item := range items {
			link, _ := item.Entry.LinkToOpen()
			if link == "" {
				link = "-"
			}
			fmt.Fprintf(a.stdout, "[%s] %s\t%s\n", item.Category, item.Entry.Title, link)
		}
		a.logger.Info("Opening links skipped (--no-open)", "selected", len(items))
		return nil
	}

	opener := browser.NewOpener(a.launcher, a.settings.Browser, a.logger)
	opener.SetPacing(a.settings.PacingDuration())
	result := opener.Open(ctx, items)

	a.logger.Info("Opened links",
		"opened", result.Opened,
		"shop_links", result.ShopLinks,
		"track_links", result.TrackFallbacks,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return ctx.Err()
}

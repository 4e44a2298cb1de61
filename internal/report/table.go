// Package report renders a link summary as a per-category table.
package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/handiism/soundcloud-digger/internal/model"
)

var header = []string{"Category", "Links"}

// Rows returns one row per category in fixed order, followed by a total row.
func Rows(s *model.Summary) [][]string {
	rows := make([][]string, 0, model.NumCategories+1)
	for _, c := range model.Categories() {
		rows = append(rows, []string{c.String(), strconv.Itoa(s.Count(c))})
	}
	rows = append(rows, []string{"total", strconv.Itoa(s.Total())})
	return rows
}

// Write renders the summary table to w.
func Write(w io.Writer, s *model.Summary) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					PerColumn: []tw.Align{tw.AlignLeft, tw.AlignRight},
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	table.Header(header)
	if err := table.Bulk(Rows(s)); err != nil {
		return err
	}
	return table.Render()
}

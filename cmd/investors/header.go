package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pengelbrecht/investors/internal/scroll"
)

func newHeaderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Print the collapsing header state for scroll offsets",
		Long: `Header evaluates the header animation for each --offset using the
configured bounds. Without offsets it samples the overscroll zone, the
collapse range and past it.`,
		Example: `  investors header --offset 0 --offset 60 --offset 120`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeader(cmd, a)
		},
	}
	cmd.Flags().Float64Slice("offset", nil, "scroll offset in logical pixels (repeatable)")
	cmd.Flags().StringP("output", "o", outputTable, "output format: table, json or csv")
	return cmd
}

// headerRow is one evaluated offset.
type headerRow struct {
	Offset float64 `json:"offset"`
	scroll.Outputs
}

func runHeader(cmd *cobra.Command, a *app) error {
	format, _ := cmd.Flags().GetString("output")
	if format != outputTable && format != outputJSON && format != outputCSV {
		return fmt.Errorf("unknown output format %q", format)
	}

	interp, err := a.interpolator()
	if err != nil {
		return err
	}
	offsets, _ := cmd.Flags().GetFloat64Slice("offset")
	if len(offsets) == 0 {
		offsets = sampleOffsets(interp.ScrollDistance(), a.cfg.Scroll.Overscroll)
	}

	rows := make([]headerRow, 0, len(offsets))
	for _, off := range offsets {
		rows = append(rows, headerRow{Offset: off, Outputs: interp.Update(off)})
	}

	out := cmd.OutOrStdout()
	if format == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	renderHeaderTable(out, rows, format)
	return nil
}

// sampleOffsets spans the overscroll zone, the collapse range in quarters
// and one overscroll past it.
func sampleOffsets(distance, overscroll float64) []float64 {
	return []float64{
		-overscroll,
		0,
		distance / 4,
		distance / 2,
		3 * distance / 4,
		distance,
		distance + overscroll,
	}
}

func renderHeaderTable(w io.Writer, rows []headerRow, format string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Offset", "Height", "TranslateY", "Opacity", "TitleScale", "SearchY", "CategoryOpacity", "CategoryY"})

	configs := make([]table.ColumnConfig, 0, 8)
	for i := 1; i <= 8; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	for _, r := range rows {
		o := r.Outputs
		t.AppendRow(table.Row{
			num(r.Offset),
			num(o.HeaderHeight),
			num(o.HeaderTranslateY),
			num(o.HeaderOpacity),
			num(o.TitleScale),
			num(o.SearchBarTranslateY),
			num(o.CategoryBarOpacity),
			num(o.CategoryBarTranslateY),
		})
	}

	if format == outputCSV {
		t.RenderCSV()
		return
	}
	t.Render()
}

// num rounds to three decimals and drops trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/view"
)

// Output formats for headless commands.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered and sorted investor list",
		Long: `List applies the same search, category and sort as the browser and prints
the resulting view. Flags override the criteria from the configuration.`,
		Example: `  investors list --search fin
  investors list --category "Tech & IA" --sort portfolio --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, a)
		},
	}
	f := cmd.Flags()
	f.String("search", "", "case-insensitive text matched against name and expertise")
	f.String("category", "", "category to keep, or Tous for all")
	f.String("sort", "", "sort key: name, investments or portfolio")
	f.StringP("output", "o", outputTable, "output format: table, json or csv")
	return cmd
}

func runList(cmd *cobra.Command, a *app) error {
	format, _ := cmd.Flags().GetString("output")
	if format != outputTable && format != outputJSON && format != outputCSV {
		return fmt.Errorf("unknown output format %q", format)
	}

	p, err := a.pipeline()
	if err != nil {
		return err
	}
	u, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := p.SetCriteria(u); err != nil {
		return err
	}

	items, err := a.source().Load()
	if err != nil {
		return err
	}
	p.SetCollection(items)
	a.logger.Info("listing investors",
		zap.Int("total", p.CollectionLen()),
		zap.Int("shown", p.Len()))

	out := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return renderListJSON(out, p.CurrentView())
	default:
		renderListTable(out, p.CurrentView(), format)
		return nil
	}
}

// criteriaFromFlags builds an update from the flags that were set.
func criteriaFromFlags(cmd *cobra.Command) (view.Update, error) {
	var u view.Update
	f := cmd.Flags()
	if f.Changed("search") {
		s, _ := f.GetString("search")
		u = u.WithSearch(s)
	}
	if f.Changed("category") {
		s, _ := f.GetString("category")
		c, err := view.ParseCategory(s)
		if err != nil {
			return view.Update{}, err
		}
		u = u.WithCategory(c)
	}
	if f.Changed("sort") {
		s, _ := f.GetString("sort")
		k, err := view.ParseSortKey(s)
		if err != nil {
			return view.Update{}, err
		}
		u = u.WithSort(k)
	}
	return u, nil
}

func renderListTable(w io.Writer, items []*investor.Investor, format string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Expertise", "Investments", "Portfolio", "Rating", "Exits", "Location"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for i, inv := range items {
		name := inv.Name
		if inv.Verified {
			name += " ✓"
		}
		t.AppendRow(table.Row{
			i + 1,
			name,
			string(inv.Expertise),
			inv.Investments,
			inv.PortfolioLabel(),
			fmt.Sprintf("%.1f", inv.Rating),
			inv.SuccessfulExits,
			inv.Location,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d investors", len(items))})

	if format == outputCSV {
		t.RenderCSV()
		return
	}
	t.Render()
}

// listItem is the JSON form of an investor.
type listItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Expertise       string   `json:"expertise"`
	Investments     int      `json:"investments"`
	Portfolio       string   `json:"portfolio"`
	PortfolioLabel  string   `json:"portfolio_label"`
	Rating          float64  `json:"rating"`
	SuccessfulExits int      `json:"successful_exits"`
	TicketSize      string   `json:"preferred_ticket_size,omitempty"`
	Sectors         []string `json:"sectors,omitempty"`
	Location        string   `json:"location,omitempty"`
	Verified        bool     `json:"verified"`
}

func renderListJSON(w io.Writer, items []*investor.Investor) error {
	out := make([]listItem, 0, len(items))
	for _, inv := range items {
		out = append(out, listItem{
			ID:              inv.ID,
			Name:            inv.Name,
			Expertise:       string(inv.Expertise),
			Investments:     inv.Investments,
			Portfolio:       inv.Portfolio.String(),
			PortfolioLabel:  inv.PortfolioLabel(),
			Rating:          inv.Rating,
			SuccessfulExits: inv.SuccessfulExits,
			TicketSize:      inv.TicketSize,
			Sectors:         inv.Sectors,
			Location:        inv.Location,
			Verified:        inv.Verified,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

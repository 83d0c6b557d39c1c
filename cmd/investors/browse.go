package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pengelbrecht/investors/internal/tui"
	"github.com/pengelbrecht/investors/internal/watch"
)

func newBrowseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive investor browser",
		Long: `Browse opens the terminal browser. Type / to search, tab to change
category, s to cycle the sort order, r to reload the data file and j/k to
scroll. With --watch the data file is reloaded whenever it changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watchFile, _ := cmd.Flags().GetBool("watch")
			return runBrowse(cmd, a, watchFile)
		},
	}
	cmd.Flags().Bool("watch", false, "reload the data file when it changes")
	return cmd
}

func runBrowse(cmd *cobra.Command, a *app, watchFile bool) error {
	if watchFile && a.cfg.DataFile == "" {
		return errors.New("--watch needs a data file (--data or data_file)")
	}

	p, err := a.pipeline()
	if err != nil {
		return err
	}
	interp, err := a.interpolator()
	if err != nil {
		return err
	}

	s := a.cfg.Scroll
	model := tui.New(p, interp,
		tui.WithLoader(a.source().Load),
		tui.WithLogger(a.logger.Named("tui")),
		tui.WithSettings(tui.Settings{
			PxPerRow:        a.cfg.Header.PxPerRow,
			Step:            s.Step,
			CardHeight:      s.CardHeight,
			Overscroll:      s.Overscroll,
			FrameInterval:   s.FrameInterval,
			SpringFrequency: s.Spring.Frequency,
			SpringDamping:   s.Spring.Damping,
		}),
	)

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	if watchFile {
		w, err := watch.New(a.cfg.DataFile, watch.WithLogger(a.logger.Named("watch")))
		if err != nil {
			cancel()
			return err
		}
		go func() {
			defer close(done)
			err := w.Run(ctx, func(r watch.Result) {
				if r.Err != nil {
					program.Send(tui.LoadErrorMsg{Err: r.Err})
					return
				}
				program.Send(tui.CollectionMsg{Investors: r.Investors})
			})
			if err != nil {
				a.logger.Warn("watcher stopped", zap.Error(err))
				program.Send(tui.LoadErrorMsg{Err: err})
			}
		}()
	} else {
		close(done)
	}

	_, err = program.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
		return nil
	}
	return err
}

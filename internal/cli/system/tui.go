package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/tui"
	"github.com/julianstephens/excusedex/internal/watch"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	var changes <-chan struct{}
	if path := ctx.SQLitePath(); path != "" {
		w, err := watch.New(path)
		if err != nil {
			logger.Warn("Cannot watch database, views refresh on navigation only", "error", err)
		} else {
			defer w.Close()
			changes = w.Events()
		}
	}

	model := tui.NewModel(ctx.Store, tui.Options{
		Changes:  changes,
		Now:      ctx.Clock,
		Snapshot: ctx.PerformAutomaticBackup,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Context()))
	_, err := p.Run()
	return err
}

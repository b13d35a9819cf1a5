package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunevault/internal/principal"
	"github.com/desertthunder/tunevault/internal/shared"
	"github.com/desertthunder/tunevault/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive catalog browser.
//
// Deleting from the browser requires --username.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunevault-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	var actor *principal.Principal
	if cmd.String("username") != "" {
		if actor, err = r.actor(cmd); err != nil {
			return err
		}
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	model := ui.NewModel(c, actor, r.logger)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

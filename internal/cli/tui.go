package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/keyring"
	"github.com/cohortapp/cohort-cli/internal/route"
	"github.com/cohortapp/cohort-cli/internal/sync"
	"github.com/cohortapp/cohort-cli/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	return runTUI(ctx, "")
}

// OpenCmd launches the TUI on a specific location fragment, e.g.
// "habit/1234" or "events".
type OpenCmd struct {
	Fragment string `arg:"" help:"Location fragment to open, e.g. habit/<id> or events."`
}

func (c *OpenCmd) Run(ctx *Context) error {
	return runTUI(ctx, c.Fragment)
}

func runTUI(ctx *Context, fragment string) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	sessions := make(chan sync.Session, 1)
	p := tea.NewProgram(
		tui.NewModel(ctx.Store, ctx.Media, ctx.Gen, sessions),
		tea.WithAltScreen(),
	)

	backend := sync.NewStoreBackend(ctx.Store, sessions)
	bridge := sync.NewBridge(backend, func(a app.Action) {
		p.Send(tui.ActionMsg{Action: a})
	})
	bridgeCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bridge.Run(bridgeCtx)

	// Resume a persisted session before the first frame.
	if token, err := keyring.GetSessionToken(); err == nil && token != "" {
		if profile, err := ctx.Store.GetProfile(token); err == nil {
			sessions <- sync.Session{Present: true, User: profile.User, Profile: profile}
		}
	}
	if fragment != "" {
		p.Send(tui.ActionMsg{Action: route.Parse(fragment)})
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}

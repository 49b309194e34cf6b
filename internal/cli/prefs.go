package cli

import (
	"fmt"

	"github.com/cohortapp/cohort-cli/internal/storage"
)

type PrefsCmd struct {
	Show PrefsShowCmd `cmd:"" help:"Show current preferences." default:"1"`
	Set  PrefsSetCmd  `cmd:"" help:"Change theme or language."`
}

type PrefsShowCmd struct{}

func (cmd *PrefsShowCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPrefs()
	if err != nil {
		return err
	}
	fmt.Printf("theme:    %s\nlanguage: %s\n", prefs.Theme, prefs.Language)
	return nil
}

type PrefsSetCmd struct {
	Theme    string `help:"UI theme (light or dark)."`
	Language string `help:"Two-letter language code, e.g. en."`
}

func (cmd *PrefsSetCmd) Run(ctx *Context) error {
	if cmd.Theme == "" && cmd.Language == "" {
		return fmt.Errorf("pass --theme and/or --language")
	}
	prefs, err := ctx.Store.GetPrefs()
	if err != nil {
		return err
	}
	if cmd.Theme != "" {
		if cmd.Theme != "light" && cmd.Theme != "dark" {
			return fmt.Errorf("theme must be light or dark, got %q", cmd.Theme)
		}
		prefs.Theme = cmd.Theme
	}
	if cmd.Language != "" {
		prefs.Language = cmd.Language
	}
	if err := ctx.Store.SavePrefs(storage.Prefs{Theme: prefs.Theme, Language: prefs.Language}); err != nil {
		return err
	}
	fmt.Printf("Preferences saved: theme %s, language %s\n", prefs.Theme, prefs.Language)
	return nil
}

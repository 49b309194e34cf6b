package cli

import (
	"context"
	"testing"
)

type recordingGen struct {
	language string
}

func (g *recordingGen) Motto(ctx context.Context, name string) string { return "motto" }

func (g *recordingGen) HealthTip(ctx context.Context, language string) string {
	g.language = language
	return "tip"
}

func TestPrefsSet_RoundTrip(t *testing.T) {
	ctx := newTestContext(t)

	set := &PrefsSetCmd{Theme: "dark", Language: "de"}
	if err := set.Run(ctx); err != nil {
		t.Fatalf("prefs set failed: %v", err)
	}

	prefs, err := ctx.Store.GetPrefs()
	if err != nil {
		t.Fatalf("GetPrefs failed: %v", err)
	}
	if prefs.Theme != "dark" || prefs.Language != "de" {
		t.Errorf("Prefs = %+v, want dark/de", prefs)
	}

	// Partial update keeps the other field.
	set = &PrefsSetCmd{Theme: "light"}
	if err := set.Run(ctx); err != nil {
		t.Fatalf("prefs set failed: %v", err)
	}
	if prefs, _ := ctx.Store.GetPrefs(); prefs.Theme != "light" || prefs.Language != "de" {
		t.Errorf("Prefs after partial set = %+v, want light/de", prefs)
	}
}

func TestPrefsSet_RejectsBadInput(t *testing.T) {
	ctx := newTestContext(t)

	if err := (&PrefsSetCmd{}).Run(ctx); err == nil {
		t.Error("prefs set without flags should fail")
	}
	if err := (&PrefsSetCmd{Theme: "solarized"}).Run(ctx); err == nil {
		t.Error("prefs set with an unknown theme should fail")
	}
	if prefs, _ := ctx.Store.GetPrefs(); prefs.Theme != "light" {
		t.Errorf("Rejected input still changed prefs: %+v", prefs)
	}
}

func TestTip_UsesPreferredLanguage(t *testing.T) {
	ctx := newTestContext(t)
	gen := &recordingGen{}
	ctx.Gen = gen

	if err := (&PrefsSetCmd{Language: "nl"}).Run(ctx); err != nil {
		t.Fatalf("prefs set failed: %v", err)
	}
	if err := (&TipCmd{}).Run(ctx); err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	if gen.language != "nl" {
		t.Errorf("Tip generated for language %q, want nl", gen.language)
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		if prefs, err := ctx.Store.GetPrefs(); err != nil {
			fmt.Printf("❌ Preferences readable: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Preferences readable: OK (theme %s, language %s)\n", prefs.Theme, prefs.Language)
		}
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: UNAVAILABLE (sessions will not persist)\n")
	}

	if token, err := keyring.GetSessionToken(); err == nil && token != "" {
		if _, err := ctx.Store.GetProfile(token); err != nil {
			fmt.Printf("⚠ Session: stale token points at a missing profile\n")
		} else {
			fmt.Printf("✓ Session: OK\n")
		}
	} else {
		fmt.Printf("✓ Session: none (logged out)\n")
	}

	// A second running instance can hold the SQLite file locked.
	if others, err := otherInstances(); err != nil {
		fmt.Printf("⚠ Process check: UNAVAILABLE (%v)\n", err)
	} else if others > 0 {
		fmt.Printf("⚠ Process check: %d other %s process(es) running\n", others, constants.AppName)
	} else {
		fmt.Printf("✓ Process check: OK\n")
	}

	zone, offset := time.Now().Zone()
	fmt.Printf("✓ Local clock: %s (%s, UTC%+dh)\n", time.Now().Format(time.RFC822), zone, offset/3600)

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func otherInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			count++
		}
	}
	return count, nil
}

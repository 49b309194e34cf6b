package cli

import (
	"fmt"
	"os"
)

type InitCmd struct {
	Force bool `help:"Delete any existing database before initializing."`
}

func (cmd *InitCmd) Run(ctx *Context) error {
	if cmd.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized cohort storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

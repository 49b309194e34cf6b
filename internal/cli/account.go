package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cohortapp/cohort-cli/internal/keyring"
	"github.com/cohortapp/cohort-cli/internal/models"
)

type AccountCmd struct {
	Register AccountRegisterCmd `cmd:"" help:"Create a new account."`
	Login    AccountLoginCmd    `cmd:"" help:"Log in as an existing account."`
	Logout   AccountLogoutCmd   `cmd:"" help:"Log out."`
	Whoami   AccountWhoamiCmd   `cmd:"" help:"Show the logged-in account."`
}

type AccountRegisterCmd struct {
	Name string `arg:"" help:"Display name for the new account."`
}

func (cmd *AccountRegisterCmd) Run(ctx *Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if p.Name == cmd.Name {
			return fmt.Errorf("%q is already taken", cmd.Name)
		}
	}

	genCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	profile := models.UserProfile{
		User:        models.User{ID: models.NewID(), Name: cmd.Name},
		Motto:       ctx.Gen.Motto(genCtx, cmd.Name),
		MemberSince: time.Now(),
	}
	if err := ctx.Store.AddProfile(profile); err != nil {
		return err
	}
	if err := keyring.SetSessionToken(profile.ID); err != nil {
		return fmt.Errorf("account created but session not saved: %w", err)
	}
	fmt.Printf("Welcome, %s. Your motto: %q\n", profile.Name, profile.Motto)
	return nil
}

type AccountLoginCmd struct {
	Name string `arg:"" help:"Account name to log in as."`
}

func (cmd *AccountLoginCmd) Run(ctx *Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if p.Name == cmd.Name {
			if err := keyring.SetSessionToken(p.ID); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", p.Name)
			return nil
		}
	}
	return fmt.Errorf("no account named %q", cmd.Name)
}

type AccountLogoutCmd struct{}

func (cmd *AccountLogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteSessionToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

type AccountWhoamiCmd struct{}

func (cmd *AccountWhoamiCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}
	role := ""
	if profile.IsAdmin {
		role = " (admin)"
	}
	fmt.Printf("%s%s, member since %s\n", profile.Name, role, profile.MemberSince.Format("January 2006"))
	return nil
}

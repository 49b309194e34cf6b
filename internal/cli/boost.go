package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cohortapp/cohort-cli/internal/models"
)

type BoostCmd struct {
	Request BoostRequestCmd `cmd:"" help:"Submit a boost request for a group habit."`
	Review  BoostReviewCmd  `cmd:"" help:"Review pending boost requests (admin)."`
}

type BoostRequestCmd struct {
	Habit string `arg:"" help:"Habit id or name to boost."`
	Proof string `arg:"" type:"existingfile" help:"Path to the proof-of-payment image."`
}

func (cmd *BoostRequestCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}
	habit, err := ctx.findHabit(cmd.Habit)
	if err != nil {
		return err
	}
	if habit.Type != models.HabitGroup {
		return fmt.Errorf("only group habits can be boosted")
	}

	data, err := os.ReadFile(cmd.Proof)
	if err != nil {
		return fmt.Errorf("reading proof image: %w", err)
	}
	req := models.BoostRequest{
		ID:        models.NewID(),
		HabitID:   habit.ID,
		UserID:    profile.ID,
		Status:    models.BoostPending,
		Timestamp: time.Now(),
	}
	uploadPath := "uploads/boosts/" + req.ID + filepath.Ext(cmd.Proof)
	if err := ctx.Media.Upload(uploadPath, data); err != nil {
		return err
	}
	req.ProofImage = ctx.Media.PublicURL(uploadPath)

	if err := ctx.Store.AddBoostRequest(req); err != nil {
		return err
	}
	fmt.Printf("Boost requested for %q, pending admin review (%s)\n", habit.Name, req.ID)
	return nil
}

type BoostReviewCmd struct {
	ID      string `arg:"" optional:"" help:"Request id to decide. Omit to list pending requests."`
	Approve bool   `help:"Approve the request." xor:"decision"`
	Reject  bool   `help:"Reject the request." xor:"decision"`
}

func (cmd *BoostReviewCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}
	if !profile.IsAdmin {
		return fmt.Errorf("only admins can review boost requests")
	}

	requests, err := ctx.Store.GetAllBoostRequests()
	if err != nil {
		return err
	}

	if cmd.ID == "" {
		pending := 0
		for _, r := range requests {
			if r.Status != models.BoostPending {
				continue
			}
			name := r.HabitID
			if h, err := ctx.Store.GetHabit(r.HabitID); err == nil {
				name = h.Name
			}
			fmt.Printf("%s  %-30s by %s  %s\n", r.ID, name, r.UserID, r.Timestamp.Format(time.RFC822))
			pending++
		}
		if pending == 0 {
			fmt.Println("No pending boost requests.")
		}
		return nil
	}

	if cmd.Approve == cmd.Reject {
		return fmt.Errorf("pass exactly one of --approve or --reject")
	}
	status := models.BoostRejected
	if cmd.Approve {
		status = models.BoostApproved
	}
	if err := ctx.Store.UpdateBoostRequestStatus(cmd.ID, status); err != nil {
		return fmt.Errorf("request %s is not pending: %w", cmd.ID, err)
	}
	fmt.Printf("Request %s %s\n", cmd.ID, status)
	return nil
}

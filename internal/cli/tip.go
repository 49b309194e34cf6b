package cli

import (
	"context"
	"fmt"
	"time"
)

// TipCmd prints a health tip in the preferred language. Generation is
// best effort: without a reachable generator the canned tip is printed.
type TipCmd struct{}

func (cmd *TipCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPrefs()
	if err != nil {
		return err
	}
	genCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	fmt.Println(ctx.Gen.HealthTip(genCtx, prefs.Language))
	return nil
}

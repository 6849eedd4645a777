package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// Settings shows the QR card settings, or changes one field with
// "settings set <field> <value>".
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return printSettings(a.out, a.session.Settings.Get())
	}
	if args[0] != "set" || len(args) < 3 {
		return usage("settings [set <field> <value>]")
	}

	patch, err := models.ParseSettingsPatch(args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	if _, err := a.session.Settings.Update(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

// Sync pulls every record kind from the remote store now.
func (a *App) Sync(ctx context.Context) error {
	if err := a.session.Sync(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Synced")
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrcontacts/internal/client/auth"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, name and password, creates the account and
// signs it in. The new profile is seeded with the name and email.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	id, err := a.authService.Register(ctx, email, name, password)
	if err != nil {
		return err
	}
	a.openSession(ctx, id)

	if _, err := a.session.Profile.Patch(ctx, models.ProfilePatch{Name: &id.Name, Email: &id.Email}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and, on success, switches to the user's
// records. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	id, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.openSession(ctx, id)

	fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(id))
	return nil
}

// Logout forgets the stored session and returns to local-only records.
// The signed-out user's cached records stay on disk for the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.openSession(ctx, auth.Identity{})
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in; records are kept on this device only")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", displayName(a.identity), a.identity.Email, a.identity.UserID)
	return nil
}

func displayName(id auth.Identity) string {
	if id.Name != "" {
		return id.Name
	}
	return id.Email
}

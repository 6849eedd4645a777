package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// Profile shows the user's profile, or edits it with "profile set".
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printProfile(a.out, a.session.Profile.Get())
		return nil
	}
	if args[0] != "set" || len(args) > 1 {
		return usage("profile [set]")
	}
	return a.editProfile(ctx)
}

func (a *App) editProfile(ctx context.Context) error {
	cur := a.session.Profile.Get()
	var patch models.ProfilePatch

	fmt.Fprintf(a.out, "Editing profile (Enter keeps a value, %q clears it)\n", clearValue)
	fields := []struct {
		label string
		cur   string
		dst   **string
	}{
		{"Name", cur.Name, &patch.Name},
		{"Title", cur.Title, &patch.Title},
		{"Company", cur.Company, &patch.Company},
		{"Email", cur.Email, &patch.Email},
		{"Phone", cur.Phone, &patch.Phone},
	}
	for _, f := range fields {
		v, err := askField(a.reader, a.out, f.label, f.cur)
		if err != nil {
			return err
		}
		if v != f.cur {
			*f.dst = &v
		}
	}

	socials, err := GetPairs(a.reader, "Social profiles (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	patch.Socials = socials

	if _, err := a.session.Profile.Patch(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

// Picture stores the image at the given path and sets it on the profile.
func (a *App) Picture(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		return usage("picture <path>")
	}

	ref, err := a.uploader.Upload(ctx, a.identity.UserID, path)
	if err != nil {
		return err
	}
	if _, err := a.session.Profile.Patch(ctx, models.ProfilePatch{ProfilePicture: &ref}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile picture set to", ref)
	return nil
}

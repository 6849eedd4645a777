package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/services"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// Scan reads the text decoded from a QR code and stores it as a contact.
func (a *App) Scan(ctx context.Context) error {
	raw, err := GetMultiline(a.reader, "Paste the scanned QR code text", a.out)
	if err != nil {
		return err
	}

	c, err := a.session.Contacts.AddScanned(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", c.Name, c.ID)
	return nil
}

// Add collects a contact by hand.
func (a *App) Add(ctx context.Context) error {
	var d models.ContactDraft

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &d.Name},
		{"Title", &d.Title},
		{"Company", &d.Company},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
		{"Where did you meet", &d.MetAt},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}
	d.Notes = notes

	socials, err := GetPairs(a.reader, "Social profiles", a.out)
	if err != nil {
		return err
	}
	d.Socials = socials

	c, err := a.session.Contacts.Create(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", c.Name, c.ID)
	return nil
}

func (a *App) List(_ context.Context, args []string) error {
	order := ""
	if len(args) > 0 {
		order = args[0]
	}
	o, err := services.ParseSortOrder(order)
	if err != nil {
		return err
	}

	printContacts(a.out, a.session.Contacts.Sorted(o))
	return nil
}

func (a *App) Search(_ context.Context, args []string) error {
	q := strings.Join(args, " ")
	if q == "" {
		return usage("search <text>")
	}
	printContacts(a.out, a.session.Contacts.Search(q))
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	c, err := a.session.Contacts.Get(args[0])
	if err != nil {
		return err
	}
	printContact(a.out, c)
	return nil
}

// Edit walks through the contact's fields; Enter keeps a value and "-"
// clears it. Socials are replaced only when new ones are entered.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <id>")
	}
	c, err := a.session.Contacts.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Editing %s (Enter keeps a value, %q clears it)\n", c.Name, clearValue)
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &c.Name},
		{"Title", &c.Title},
		{"Company", &c.Company},
		{"Email", &c.Email},
		{"Phone", &c.Phone},
		{"Met at", &c.MetAt},
		{"Notes", &c.Notes},
	}
	for _, f := range fields {
		v, err := askField(a.reader, a.out, f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	socials, err := GetPairs(a.reader, "Social profiles (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	if socials != nil {
		c.Socials = socials
	}

	if _, err := a.session.Contacts.Update(ctx, c); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return usage("delete <id>...")
	case 1:
		if err := a.session.Contacts.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted 1 contact")
	default:
		n, err := a.session.Contacts.DeleteMany(ctx, args)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %d of %d contacts\n", n, len(args))
	}
	return nil
}

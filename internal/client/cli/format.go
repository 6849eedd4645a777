package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

const dateLayout = "2006-01-02"

func printContacts(w io.Writer, cs []models.Contact) {
	if len(cs) == 0 {
		fmt.Fprintln(w, "No contacts")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tMET AT\tDATE")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.MetAt, c.Date.Format(dateLayout))
	}
	_ = tw.Flush()
}

func printContact(w io.Writer, c models.Contact) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", label, v)
		}
	}
	row("ID", c.ID)
	row("Name", c.Name)
	row("Title", c.Title)
	row("Company", c.Company)
	row("Email", c.Email)
	row("Phone", c.Phone)
	row("Met at", c.MetAt)
	row("Date", c.Date.Format(dateLayout))
	row("Notes", c.Notes)
	for _, k := range slices.Sorted(maps.Keys(c.Socials)) {
		row(k, c.Socials[k])
	}
	_ = tw.Flush()
}

func printProfile(w io.Writer, p models.Profile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, v string) {
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(tw, "%s:\t%s\n", label, v)
	}
	row("Name", p.Name)
	row("Title", p.Title)
	row("Company", p.Company)
	row("Email", p.Email)
	row("Phone", p.Phone)
	row("Picture", p.ProfilePicture)
	for _, k := range slices.Sorted(maps.Keys(p.Socials)) {
		row(k, p.Socials[k])
	}
	_ = tw.Flush()
}

func printSettings(w io.Writer, s models.QRSettings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Package models defines the client-side records: contacts collected at
// meetings, the user's own profile, and QR card display settings.
package models

import (
	"errors"
	"maps"
	"strings"
	"time"
)

// ErrMissingName is returned when a contact would be created without a name.
var ErrMissingName = errors.New("contact name is required")

// Contact is a person met in person and recorded by scan, manual entry or edit.
type Contact struct {
	// ID is unique within the owning collection and sorts roughly by creation time.
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Notes   string `json:"notes,omitempty"`
	// MetAt is free-text provenance, e.g. "QR Code Scan" or a conference name.
	MetAt string `json:"metAt,omitempty"`
	// Date is when the meeting happened, not when the record was persisted.
	Date time.Time `json:"date"`
	// Socials maps a lower-cased platform name to a profile URL.
	Socials map[string]string `json:"socials,omitempty"`
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	c.Socials = maps.Clone(c.Socials)
	return c
}

// Validate checks the record-level invariants.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// ContactDraft is a partially filled contact, as extracted from a scanned payload.
type ContactDraft struct {
	Name    string
	Title   string
	Company string
	Email   string
	Phone   string
	Notes   string
	MetAt   string
	Socials map[string]string
}

// Complete turns the draft into a Contact with the given id and encounter date.
// Social keys are normalized to lower case.
func (d ContactDraft) Complete(id string, date time.Time) (Contact, error) {
	c := Contact{
		ID:      id,
		Name:    d.Name,
		Title:   d.Title,
		Company: d.Company,
		Email:   d.Email,
		Phone:   d.Phone,
		Notes:   d.Notes,
		MetAt:   d.MetAt,
		Date:    date.UTC(),
		Socials: NormalizeSocials(d.Socials),
	}
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// NormalizeSocials returns a copy of socials with lower-cased keys.
// When two keys collapse to the same name the one visited last wins, so
// callers should not rely on which survives. A nil map stays nil.
func NormalizeSocials(socials map[string]string) map[string]string {
	if socials == nil {
		return nil
	}
	out := make(map[string]string, len(socials))
	for k, v := range socials {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Package payload turns the raw text decoded from a scanned QR code into a
// contact draft.
//
// # Formats
//
// Parse tries a fixed, ordered list of detectors and the first one that
// matches wins:
//
//  1. vCard            (input starts with BEGIN:VCARD)
//  2. JSON object      (legacy card format, needs a non-empty "name")
//  3. LinkedIn URL     (contains linkedin.com/in/)
//  4. Generic URL      (starts with http)
//  5. Plain text       (anything else that is not blank)
//
// A detector that recognizes its format but cannot extract a record (for
// example JSON-looking text that does not parse) reports ErrMalformed and
// Parse moves on to the next one. Blank input yields ErrUnrecognized.
//
// The package performs no I/O and keeps no state; parsing the same input
// twice gives equal drafts.
package payload

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

var (
	// ErrUnrecognized means no contact information could be extracted.
	ErrUnrecognized = errors.New("could not extract contact information")
	// ErrMalformed means the payload looked like a known format but was invalid.
	ErrMalformed = errors.New("malformed payload")
)

// MetAtScan is the provenance recorded for every scanned contact.
const MetAtScan = "QR Code Scan"

type detector struct {
	name  string
	match func(raw, trimmed string) bool
	parse func(raw, trimmed string) (models.ContactDraft, error)
}

// detectors is ordered by priority.
var detectors = []detector{
	{name: "vcard", match: isVCard, parse: parseVCardPayload},
	{name: "json", match: isJSONObject, parse: parseJSON},
	{name: "linkedin", match: isLinkedIn, parse: parseLinkedIn},
	{name: "url", match: isURL, parse: parseURL},
	{name: "text", match: isText, parse: parseText},
}

// Parse classifies raw and extracts a contact draft from it.
//
// Callers must still treat a draft without a name as a failure; see
// models.ContactDraft.Complete.
func Parse(raw string) (models.ContactDraft, error) {
	d, _, err := Classify(raw)
	return d, err
}

// Classify is Parse that also reports which detector produced the draft.
func Classify(raw string) (models.ContactDraft, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.ContactDraft{}, "", ErrUnrecognized
	}

	for _, d := range detectors {
		if !d.match(raw, trimmed) {
			continue
		}
		draft, err := d.parse(raw, trimmed)
		if errors.Is(err, ErrMalformed) {
			continue
		}
		if err != nil {
			return models.ContactDraft{}, d.name, err
		}
		return draft, d.name, nil
	}

	return models.ContactDraft{}, "", ErrUnrecognized
}

func isText(_, trimmed string) bool {
	return trimmed != ""
}

func parseText(raw, _ string) (models.ContactDraft, error) {
	return models.ContactDraft{
		Name:  "Text Contact",
		Notes: raw,
		MetAt: MetAtScan,
	}, nil
}

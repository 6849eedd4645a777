package payload

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

const (
	vcardBegin   = "BEGIN:VCARD"
	vcardEnd     = "END:VCARD"
	vcardVersion = "VERSION:"

	vcardDefaultNotes = "Contact from vCard"
	defaultPlatform   = "website"
)

var urlTypeParam = regexp.MustCompile(`(?i)type=([^;]+)`)

func isVCard(_, trimmed string) bool {
	return strings.HasPrefix(trimmed, vcardBegin)
}

func parseVCardPayload(_, trimmed string) (models.ContactDraft, error) {
	return ParseVCard(trimmed), nil
}

// ParseVCard extracts a draft from vCard lines. Line order does not matter;
// BEGIN/END/VERSION lines, lines without a colon and lines with an empty
// value are skipped. Unknown properties are dropped.
func ParseVCard(text string) models.ContactDraft {
	d := models.ContactDraft{
		MetAt:   MetAtScan,
		Notes:   vcardDefaultNotes,
		Socials: map[string]string{},
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == vcardBegin || line == vcardEnd || strings.HasPrefix(line, vcardVersion) {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok || value == "" {
			continue
		}

		switch key {
		case "FN":
			d.Name = value
		case "TITLE":
			d.Title = value
		case "ORG":
			d.Company = value
		case "EMAIL":
			d.Email = value
		case "TEL":
			d.Phone = value
		case "NOTE":
			d.Notes = value
		default:
			if strings.HasPrefix(key, "URL") {
				d.Socials[urlPlatform(key)] = value
			}
		}
	}

	return d
}

// urlPlatform returns the lower-cased type parameter of a URL property key,
// e.g. "URL;type=LinkedIn" -> "linkedin".
func urlPlatform(key string) string {
	m := urlTypeParam.FindStringSubmatch(key)
	if m == nil {
		return defaultPlatform
	}
	return strings.ToLower(m[1])
}

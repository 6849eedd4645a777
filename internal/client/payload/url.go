package payload

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

const linkedInMarker = "linkedin.com/in/"

func isLinkedIn(raw, _ string) bool {
	return strings.Contains(raw, linkedInMarker)
}

func parseLinkedIn(_, trimmed string) (models.ContactDraft, error) {
	_, rest, _ := strings.Cut(trimmed, linkedInMarker)
	handle := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		handle = rest[:i]
	}

	return models.ContactDraft{
		Name:    "LinkedIn: " + handle,
		Notes:   "LinkedIn profile: " + trimmed,
		Socials: map[string]string{"linkedin": trimmed},
		MetAt:   MetAtScan,
	}, nil
}

type platform struct {
	label   string
	name    string
	markers []string
}

// platforms is ordered by priority; the last entry is the catch-all.
var platforms = []platform{
	{label: "Twitter/X", name: "Twitter Contact", markers: []string{"twitter.com", "x.com"}},
	{label: "Instagram", name: "Instagram Contact", markers: []string{"instagram.com"}},
	{label: "Facebook", name: "Facebook Contact", markers: []string{"facebook.com"}},
}

var websitePlatform = platform{label: "Website", name: "Web Contact"}

func isURL(_, trimmed string) bool {
	return strings.HasPrefix(trimmed, "http")
}

func parseURL(_, trimmed string) (models.ContactDraft, error) {
	p := classifyURL(trimmed)
	return models.ContactDraft{
		Name:    p.name,
		Notes:   fmt.Sprintf("%s profile: %s", p.label, trimmed),
		Socials: map[string]string{strings.ToLower(p.label): trimmed},
		MetAt:   MetAtScan,
	}, nil
}

func classifyURL(u string) platform {
	for _, p := range platforms {
		for _, m := range p.markers {
			if strings.Contains(u, m) {
				return p
			}
		}
	}
	return websitePlatform
}

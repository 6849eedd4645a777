package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// jsonNotes is fixed for the legacy card format; the payload's own notes are ignored.
const jsonNotes = "Contact information from QR code"

func isJSONObject(_, trimmed string) bool {
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

func parseJSON(_, trimmed string) (models.ContactDraft, error) {
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var card map[string]any
	if err := dec.Decode(&card); err != nil {
		return models.ContactDraft{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return models.ContactDraft{}, fmt.Errorf("%w: trailing data after json card", ErrMalformed)
	}

	name := scalarString(card["name"])
	if name == "" {
		return models.ContactDraft{}, fmt.Errorf("%w: json card without name", ErrMalformed)
	}

	return models.ContactDraft{
		Name:    name,
		Title:   scalarString(card["title"]),
		Company: scalarString(card["company"]),
		Email:   scalarString(card["email"]),
		Phone:   scalarString(card["phone"]),
		Socials: jsonSocials(card["socials"]),
		MetAt:   MetAtScan,
		Notes:   jsonNotes,
	}, nil
}

// scalarString renders a decoded JSON scalar as text. Numbers keep their
// original spelling. Null, objects and arrays count as absent.
func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func jsonSocials(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, raw := range m {
		if s := scalarString(raw); s != "" {
			out[k] = s
		}
	}
	return out
}

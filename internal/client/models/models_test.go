package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactDraft_Complete(t *testing.T) {
	date := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)
	d := ContactDraft{
		Name:    "Jane",
		Company: "Acme",
		Socials: map[string]string{"LinkedIn": "https://linkedin.com/in/jane"},
	}

	c, err := d.Complete("id-1", date)
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "Jane", c.Name)
	assert.Equal(t, "Acme", c.Company)
	assert.Equal(t, date, c.Date)
	assert.Equal(t, map[string]string{"linkedin": "https://linkedin.com/in/jane"}, c.Socials)
}

func TestContactDraft_Complete_RequiresName(t *testing.T) {
	_, err := ContactDraft{Name: "   "}.Complete("id", time.Now())
	require.ErrorIs(t, err, ErrMissingName)

	_, err = ContactDraft{}.Complete("id", time.Now())
	require.ErrorIs(t, err, ErrMissingName)
}

func TestContact_JSONOmitsAbsentFields(t *testing.T) {
	c := Contact{ID: "1", Name: "Bob", Date: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Bob","date":"2024-01-02T03:04:05Z"}`, string(b))
}

func TestContact_UnmarshalsOriginalLayout(t *testing.T) {
	raw := `{"id":"1700000000000","name":"Ann","metAt":"DevConf","date":"2024-03-01T12:00:00.000Z","socials":{"twitter/x":"https://x.com/ann"}}`

	var c Contact
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, "DevConf", c.MetAt)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), c.Date)
	assert.Equal(t, "https://x.com/ann", c.Socials["twitter/x"])
}

func TestContact_CloneIsDeep(t *testing.T) {
	c := Contact{Name: "A", Socials: map[string]string{"website": "a"}}
	cp := c.Clone()
	cp.Socials["website"] = "b"
	assert.Equal(t, "a", c.Socials["website"])
}

func TestNormalizeSocials(t *testing.T) {
	assert.Nil(t, NormalizeSocials(nil))
	assert.Equal(t, map[string]string{"github": "g", "x": "x"},
		NormalizeSocials(map[string]string{"GitHub": "g", "x": "x"}))
}

func TestProfilePatch_Apply(t *testing.T) {
	name := "New Name"
	pic := "file:///tmp/me.png"
	base := DefaultProfile()
	base.Company = "Acme"

	got := ProfilePatch{Name: &name, ProfilePicture: &pic}.Apply(base)

	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, pic, got.ProfilePicture)
	assert.Empty(t, base.Name, "patch must not modify its input")
}

func TestProfilePatch_ReplacesSocials(t *testing.T) {
	base := Profile{Socials: map[string]string{"website": "w"}}
	got := ProfilePatch{Socials: map[string]string{"GitHub": "g"}}.Apply(base)
	assert.Equal(t, map[string]string{"github": "g"}, got.Socials)
}

func TestSettingsPatch_ApplyKeepsOtherFields(t *testing.T) {
	size := 300
	show := false
	got := SettingsPatch{QRSize: &size, ShowSocials: &show}.Apply(DefaultQRSettings())

	want := DefaultQRSettings()
	want.QRSize = 300
	want.ShowSocials = false
	assert.Equal(t, want, got)
}

func TestQRSettings_PartialJSONMergesOverDefaults(t *testing.T) {
	s := DefaultQRSettings()
	require.NoError(t, json.Unmarshal([]byte(`{"fgColor":"#FF0000","qrSize":128}`), &s))

	assert.Equal(t, "#FF0000", s.FgColor)
	assert.Equal(t, 128, s.QRSize)
	assert.Equal(t, "Inter", s.FontFamily)
	assert.True(t, s.ShowName)
}

func TestParseSettingsPatch(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		check   func(t *testing.T, s QRSettings)
		wantErr error
	}{
		{name: "string", field: "bgColor", value: "#123456",
			check: func(t *testing.T, s QRSettings) { assert.Equal(t, "#123456", s.BgColor) }},
		{name: "bool", field: "showTitle", value: "false",
			check: func(t *testing.T, s QRSettings) { assert.False(t, s.ShowTitle) }},
		{name: "int", field: "fontSize", value: "18",
			check: func(t *testing.T, s QRSettings) { assert.Equal(t, 18, s.FontSize) }},
		{name: "unknown", field: "nope", value: "x", wantErr: ErrUnknownSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSettingsPatch(tt.field, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p.Apply(DefaultQRSettings()))
		})
	}

	_, err := ParseSettingsPatch("qrSize", "big")
	require.Error(t, err)
}

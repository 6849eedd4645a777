package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Layout styles understood by the QR card renderer.
const (
	LayoutCard     = "card"
	LayoutMinimal  = "minimal"
	LayoutCentered = "centered"
)

// QRSettings controls how the user's QR card is rendered.
// Every field has a default, so partial updates never leave the object invalid.
type QRSettings struct {
	BgColor             string `json:"bgColor"`
	FgColor             string `json:"fgColor"`
	PageBackgroundColor string `json:"pageBackgroundColor"`
	CardBackgroundColor string `json:"cardBackgroundColor"`
	TextColor           string `json:"textColor"`
	ShowName            bool   `json:"showName"`
	ShowTitle           bool   `json:"showTitle"`
	ShowCompany         bool   `json:"showCompany"`
	ShowContact         bool   `json:"showContact"`
	ShowSocials         bool   `json:"showSocials"`
	ShowProfilePicture  bool   `json:"showProfilePicture"`
	LayoutStyle         string `json:"layoutStyle"`
	QRSize              int    `json:"qrSize"`
	BorderRadius        int    `json:"borderRadius"`
	CardPadding         int    `json:"cardPadding"`
	FontFamily          string `json:"fontFamily"`
	FontSize            int    `json:"fontSize"`
}

// DefaultQRSettings returns the settings of a fresh account.
func DefaultQRSettings() QRSettings {
	return QRSettings{
		BgColor:             "#FFFFFF",
		FgColor:             "#000000",
		PageBackgroundColor: "#FFFFFF",
		CardBackgroundColor: "#FFFFFF",
		TextColor:           "#000000",
		ShowName:            true,
		ShowTitle:           true,
		ShowCompany:         true,
		ShowContact:         true,
		ShowSocials:         true,
		ShowProfilePicture:  true,
		LayoutStyle:         LayoutCard,
		QRSize:              220,
		BorderRadius:        12,
		CardPadding:         24,
		FontFamily:          "Inter",
		FontSize:            14,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	BgColor             *string
	FgColor             *string
	PageBackgroundColor *string
	CardBackgroundColor *string
	TextColor           *string
	ShowName            *bool
	ShowTitle           *bool
	ShowCompany         *bool
	ShowContact         *bool
	ShowSocials         *bool
	ShowProfilePicture  *bool
	LayoutStyle         *string
	QRSize              *int
	BorderRadius        *int
	CardPadding         *int
	FontFamily          *string
	FontSize            *int
}

// Apply merges the patch over s.
func (p SettingsPatch) Apply(s QRSettings) QRSettings {
	setIf(&s.BgColor, p.BgColor)
	setIf(&s.FgColor, p.FgColor)
	setIf(&s.PageBackgroundColor, p.PageBackgroundColor)
	setIf(&s.CardBackgroundColor, p.CardBackgroundColor)
	setIf(&s.TextColor, p.TextColor)
	setIf(&s.ShowName, p.ShowName)
	setIf(&s.ShowTitle, p.ShowTitle)
	setIf(&s.ShowCompany, p.ShowCompany)
	setIf(&s.ShowContact, p.ShowContact)
	setIf(&s.ShowSocials, p.ShowSocials)
	setIf(&s.ShowProfilePicture, p.ShowProfilePicture)
	setIf(&s.LayoutStyle, p.LayoutStyle)
	setIf(&s.QRSize, p.QRSize)
	setIf(&s.BorderRadius, p.BorderRadius)
	setIf(&s.CardPadding, p.CardPadding)
	setIf(&s.FontFamily, p.FontFamily)
	setIf(&s.FontSize, p.FontSize)
	return s
}

// ErrUnknownSetting is returned by ParseSettingsPatch for an unknown field name.
var ErrUnknownSetting = errors.New("unknown setting")

// ParseSettingsPatch builds a single-field patch from its JSON field name and
// a textual value, e.g. ("qrSize", "256").
func ParseSettingsPatch(field, value string) (SettingsPatch, error) {
	var p SettingsPatch

	str := func(dst **string) error { *dst = &value; return nil }
	boolean := func(dst **bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		*dst = &b
		return nil
	}
	integer := func(dst **int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		*dst = &n
		return nil
	}

	var err error
	switch field {
	case "bgColor":
		err = str(&p.BgColor)
	case "fgColor":
		err = str(&p.FgColor)
	case "pageBackgroundColor":
		err = str(&p.PageBackgroundColor)
	case "cardBackgroundColor":
		err = str(&p.CardBackgroundColor)
	case "textColor":
		err = str(&p.TextColor)
	case "showName":
		err = boolean(&p.ShowName)
	case "showTitle":
		err = boolean(&p.ShowTitle)
	case "showCompany":
		err = boolean(&p.ShowCompany)
	case "showContact":
		err = boolean(&p.ShowContact)
	case "showSocials":
		err = boolean(&p.ShowSocials)
	case "showProfilePicture":
		err = boolean(&p.ShowProfilePicture)
	case "layoutStyle":
		err = str(&p.LayoutStyle)
	case "qrSize":
		err = integer(&p.QRSize)
	case "borderRadius":
		err = integer(&p.BorderRadius)
	case "cardPadding":
		err = integer(&p.CardPadding)
	case "fontFamily":
		err = str(&p.FontFamily)
	case "fontSize":
		err = integer(&p.FontSize)
	default:
		return SettingsPatch{}, fmt.Errorf("%w: %s", ErrUnknownSetting, field)
	}
	if err != nil {
		return SettingsPatch{}, err
	}
	return p, nil
}

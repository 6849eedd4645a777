package models

import "maps"

// Profile is the user's own outbound identity, shown on their QR card.
type Profile struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	// ProfilePicture is a URI (remote object or file://) for the avatar.
	ProfilePicture string            `json:"profilePicture,omitempty"`
	Socials        map[string]string `json:"socials"`
}

// DefaultProfile returns the profile used before the user has filled anything in.
func DefaultProfile() Profile {
	return Profile{Socials: map[string]string{}}
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Socials = maps.Clone(p.Socials)
	return p
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name           *string
	Title          *string
	Company        *string
	Email          *string
	Phone          *string
	ProfilePicture *string
	Socials        map[string]string
}

// Apply returns p with the non-nil fields of the patch written over it.
// Socials, when set, replace the whole map.
func (pp ProfilePatch) Apply(p Profile) Profile {
	p = p.Clone()
	setIf(&p.Name, pp.Name)
	setIf(&p.Title, pp.Title)
	setIf(&p.Company, pp.Company)
	setIf(&p.Email, pp.Email)
	setIf(&p.Phone, pp.Phone)
	setIf(&p.ProfilePicture, pp.ProfilePicture)
	if pp.Socials != nil {
		p.Socials = NormalizeSocials(pp.Socials)
	}
	return p
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

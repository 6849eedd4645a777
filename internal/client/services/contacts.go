package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/payload"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrDuplicateID     = errors.New("contact id already exists")
)

// Defaults filled into scanned contacts that did not carry their own.
const (
	ScannedNotes = "Added via QR code scan"
	ScannedMetAt = payload.MetAtScan
)

// SortOrder selects a view order for Sorted. Stored order is never changed.
type SortOrder string

const (
	SortByRecent  SortOrder = "recent"
	SortByName    SortOrder = "name"
	SortByCompany SortOrder = "company"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortByRecent, nil
	case SortByRecent, SortByName, SortByCompany:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// ContactService manages the user's contact collection, most recent first.
type ContactService interface {
	Load(ctx context.Context)
	Ready() <-chan struct{}
	Sync(ctx context.Context) error

	List() []models.Contact
	Get(id string) (models.Contact, error)
	Search(query string) []models.Contact
	Sorted(order SortOrder) []models.Contact

	Add(ctx context.Context, c models.Contact) (models.Contact, error)
	Create(ctx context.Context, d models.ContactDraft) (models.Contact, error)
	AddScanned(ctx context.Context, raw string) (models.Contact, error)
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type contactService struct {
	rec    *record[[]models.Contact]
	remote client.Client

	now   func() time.Time
	newID func() (string, error)
}

func NewContactService(deps Deps) ContactService {
	s := &contactService{
		remote: deps.Remote,
		now:    time.Now,
		newID:  newContactID,
	}
	s.rec = newRecord(cache.KindContacts, deps,
		func() []models.Contact { return []models.Contact{} },
		cloneContacts,
		deps.Remote.FetchContacts,
	)
	return s
}

func newContactID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func cloneContacts(cs []models.Contact) []models.Contact {
	out := make([]models.Contact, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

func (s *contactService) Load(ctx context.Context) { s.rec.Load(ctx) }

func (s *contactService) Ready() <-chan struct{} { return s.rec.Ready() }

func (s *contactService) Sync(ctx context.Context) error {
	if s.rec.userID == "" {
		return ErrSignedOut
	}
	return s.rec.reconcile(ctx)
}

// List returns the contacts in stored order.
func (s *contactService) List() []models.Contact {
	return s.rec.Get()
}

func (s *contactService) Get(id string) (models.Contact, error) {
	for _, c := range s.rec.Get() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, ErrContactNotFound
}

// Search matches query case-insensitively against name, company and notes.
// An empty query matches everything.
func (s *contactService) Search(query string) []models.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	all := s.rec.Get()
	if q == "" {
		return all
	}

	out := all[:0]
	for _, c := range all {
		if containsFold(c.Name, q) || containsFold(c.Company, q) || containsFold(c.Notes, q) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

func (s *contactService) Sorted(order SortOrder) []models.Contact {
	out := s.rec.Get()

	switch order {
	case SortByName:
		slices.SortStableFunc(out, func(a, b models.Contact) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortByCompany:
		slices.SortStableFunc(out, func(a, b models.Contact) int {
			return cmp.Or(
				cmp.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company)),
				cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Contact) int {
			return b.Date.Compare(a.Date)
		})
	}
	return out
}

// Add prepends a complete contact to the collection.
func (s *contactService) Add(ctx context.Context, c models.Contact) (models.Contact, error) {
	if err := c.Validate(); err != nil {
		return models.Contact{}, err
	}
	c = c.Clone()
	c.Socials = models.NormalizeSocials(c.Socials)

	_, err := s.rec.mutate(ctx, func(cs []models.Contact) ([]models.Contact, []remoteOp, error) {
		if slices.ContainsFunc(cs, func(x models.Contact) bool { return x.ID == c.ID }) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		op := remoteOp{name: "insert contact", run: func(ctx context.Context, userID string) error {
			return s.remote.InsertContact(ctx, userID, c)
		}}
		return append([]models.Contact{c}, cs...), []remoteOp{op}, nil
	})
	if err != nil {
		return models.Contact{}, err
	}
	return c.Clone(), nil
}

// Create assigns an id and the current time to d and adds it.
func (s *contactService) Create(ctx context.Context, d models.ContactDraft) (models.Contact, error) {
	id, err := s.newID()
	if err != nil {
		return models.Contact{}, fmt.Errorf("generate id: %w", err)
	}
	c, err := d.Complete(id, s.now())
	if err != nil {
		return models.Contact{}, err
	}
	return s.Add(ctx, c)
}

// AddScanned parses a scanned payload and adds the resulting contact.
func (s *contactService) AddScanned(ctx context.Context, raw string) (models.Contact, error) {
	d, err := payload.Parse(raw)
	if err != nil {
		return models.Contact{}, err
	}
	if d.Notes == "" {
		d.Notes = ScannedNotes
	}
	if d.MetAt == "" {
		d.MetAt = ScannedMetAt
	}
	return s.Create(ctx, d)
}

// Update replaces the contact with the same id, keeping its position.
func (s *contactService) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	if err := c.Validate(); err != nil {
		return models.Contact{}, err
	}
	c = c.Clone()
	c.Socials = models.NormalizeSocials(c.Socials)

	_, err := s.rec.mutate(ctx, func(cs []models.Contact) ([]models.Contact, []remoteOp, error) {
		i := slices.IndexFunc(cs, func(x models.Contact) bool { return x.ID == c.ID })
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrContactNotFound, c.ID)
		}
		cs[i] = c
		op := remoteOp{name: "update contact", run: func(ctx context.Context, userID string) error {
			return s.remote.UpdateContact(ctx, userID, c)
		}}
		return cs, []remoteOp{op}, nil
	})
	if err != nil {
		return models.Contact{}, err
	}
	return c.Clone(), nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	n, err := s.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	return nil
}

// DeleteMany removes exactly the listed ids, keeping the relative order of
// the rest, and reports how many were removed. Unknown ids are ignored.
func (s *contactService) DeleteMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	_, err := s.rec.mutate(ctx, func(cs []models.Contact) ([]models.Contact, []remoteOp, error) {
		var ops []remoteOp
		kept := make([]models.Contact, 0, len(cs))
		for _, c := range cs {
			if _, ok := drop[c.ID]; !ok {
				kept = append(kept, c)
				continue
			}
			id := c.ID
			ops = append(ops, remoteOp{name: "delete contact", run: func(ctx context.Context, userID string) error {
				return s.remote.DeleteContact(ctx, userID, id)
			}})
		}
		removed = len(ops)
		return kept, ops, nil
	})
	return removed, err
}

package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/dbx"
)

const DefaultTimeout = 10 * time.Second

// PostgresClient mirrors records into the contacts, profiles and qr_settings
// tables. Column names are the snake_case forms of the model's JSON fields.
type PostgresClient struct {
	db      dbx.DBTX
	closer  func() error
	pinger  func(ctx context.Context) error
	timeout time.Duration
}

var _ Client = (*PostgresClient)(nil)

// OpenPostgres opens a pgx-backed pool. No connection is made until the
// first call.
func OpenPostgres(dsn string, timeout time.Duration) (*PostgresClient, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgresClient(db, timeout), nil
}

// OpenDB opens the remote store through the pgx database/sql driver.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open remote store: %w", err)
	}
	return db, nil
}

func NewPostgresClient(db *sql.DB, timeout time.Duration) *PostgresClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PostgresClient{
		db:      db,
		closer:  db.Close,
		pinger:  db.PingContext,
		timeout: timeout,
	}
}

func (c *PostgresClient) Close() error {
	return c.closer()
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.mapError(c.pinger(ctx))
}

func (c *PostgresClient) FetchContacts(ctx context.Context, userID string) ([]models.Contact, error) {
	requireUser(userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		SELECT id, name, title, company, email, phone, notes, met_at, date, socials
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer rows.Close()

	result := []models.Contact{}
	for rows.Next() {
		var (
			item    models.Contact
			socials []byte
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Title, &item.Company, &item.Email, &item.Phone,
			&item.Notes, &item.MetAt, &item.Date, &socials,
		); err != nil {
			return nil, c.mapError(err)
		}
		item.Date = item.Date.UTC()
		if item.Socials, err = decodeSocials(socials); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, c.mapError(err)
	}
	return result, nil
}

func (c *PostgresClient) InsertContact(ctx context.Context, userID string, ct models.Contact) error {
	requireUser(userID)

	socials, err := encodeSocials(ct.Socials)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		INSERT INTO contacts (id, user_id, name, title, company, email, phone, notes, met_at, date, socials)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = c.db.ExecContext(ctx, query,
		ct.ID, userID, ct.Name, ct.Title, ct.Company, ct.Email, ct.Phone, ct.Notes, ct.MetAt, ct.Date, socials)
	return c.mapError(err)
}

// UpdateContact overwrites every field of the contact. ErrNotFound is
// returned when the row does not exist for this user.
func (c *PostgresClient) UpdateContact(ctx context.Context, userID string, ct models.Contact) error {
	requireUser(userID)

	socials, err := encodeSocials(ct.Socials)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		UPDATE contacts SET
			name = $3, title = $4, company = $5, email = $6, phone = $7,
			notes = $8, met_at = $9, date = $10, socials = $11, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := c.db.ExecContext(ctx, query,
		ct.ID, userID, ct.Name, ct.Title, ct.Company, ct.Email, ct.Phone, ct.Notes, ct.MetAt, ct.Date, socials)
	if err != nil {
		return c.mapError(err)
	}
	return c.expectOneRow(res)
}

// DeleteContact is idempotent: deleting a missing row is not an error.
func (c *PostgresClient) DeleteContact(ctx context.Context, userID, contactID string) error {
	requireUser(userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	return c.mapError(err)
}

func (c *PostgresClient) FetchProfile(ctx context.Context, userID string) (models.Profile, error) {
	requireUser(userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		SELECT name, title, company, email, phone, profile_picture, socials
		FROM profiles
		WHERE user_id = $1
	`
	var (
		p       models.Profile
		socials []byte
	)
	err := c.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Name, &p.Title, &p.Company, &p.Email, &p.Phone, &p.ProfilePicture, &socials)
	if err != nil {
		return models.Profile{}, c.mapError(err)
	}
	if p.Socials, err = decodeSocials(socials); err != nil {
		return models.Profile{}, err
	}
	if p.Socials == nil {
		p.Socials = map[string]string{}
	}
	return p, nil
}

func (c *PostgresClient) UpsertProfile(ctx context.Context, userID string, p models.Profile) error {
	requireUser(userID)

	if p.Socials == nil {
		p.Socials = map[string]string{}
	}
	socials, err := encodeSocials(p.Socials)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		INSERT INTO profiles (user_id, name, title, company, email, phone, profile_picture, socials)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			profile_picture = EXCLUDED.profile_picture,
			socials = EXCLUDED.socials,
			updated_at = now();
	`
	_, err = c.db.ExecContext(ctx, query,
		userID, p.Name, p.Title, p.Company, p.Email, p.Phone, p.ProfilePicture, socials)
	return c.mapError(err)
}

func (c *PostgresClient) FetchSettings(ctx context.Context, userID string) (models.QRSettings, error) {
	requireUser(userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		SELECT bg_color, fg_color, page_background_color, card_background_color, text_color,
			show_name, show_title, show_company, show_contact, show_socials, show_profile_picture,
			layout_style, qr_size, border_radius, card_padding, font_family, font_size
		FROM qr_settings
		WHERE user_id = $1
	`
	var s models.QRSettings
	err := c.db.QueryRowContext(ctx, query, userID).Scan(
		&s.BgColor, &s.FgColor, &s.PageBackgroundColor, &s.CardBackgroundColor, &s.TextColor,
		&s.ShowName, &s.ShowTitle, &s.ShowCompany, &s.ShowContact, &s.ShowSocials, &s.ShowProfilePicture,
		&s.LayoutStyle, &s.QRSize, &s.BorderRadius, &s.CardPadding, &s.FontFamily, &s.FontSize,
	)
	if err != nil {
		return models.QRSettings{}, c.mapError(err)
	}
	return s, nil
}

func (c *PostgresClient) UpsertSettings(ctx context.Context, userID string, s models.QRSettings) error {
	requireUser(userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := `
		INSERT INTO qr_settings (user_id, bg_color, fg_color, page_background_color, card_background_color,
			text_color, show_name, show_title, show_company, show_contact, show_socials, show_profile_picture,
			layout_style, qr_size, border_radius, card_padding, font_family, font_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id)
		DO UPDATE SET
			bg_color = EXCLUDED.bg_color,
			fg_color = EXCLUDED.fg_color,
			page_background_color = EXCLUDED.page_background_color,
			card_background_color = EXCLUDED.card_background_color,
			text_color = EXCLUDED.text_color,
			show_name = EXCLUDED.show_name,
			show_title = EXCLUDED.show_title,
			show_company = EXCLUDED.show_company,
			show_contact = EXCLUDED.show_contact,
			show_socials = EXCLUDED.show_socials,
			show_profile_picture = EXCLUDED.show_profile_picture,
			layout_style = EXCLUDED.layout_style,
			qr_size = EXCLUDED.qr_size,
			border_radius = EXCLUDED.border_radius,
			card_padding = EXCLUDED.card_padding,
			font_family = EXCLUDED.font_family,
			font_size = EXCLUDED.font_size,
			updated_at = now();
	`
	_, err := c.db.ExecContext(ctx, query,
		userID, s.BgColor, s.FgColor, s.PageBackgroundColor, s.CardBackgroundColor,
		s.TextColor, s.ShowName, s.ShowTitle, s.ShowCompany, s.ShowContact, s.ShowSocials, s.ShowProfilePicture,
		s.LayoutStyle, s.QRSize, s.BorderRadius, s.CardPadding, s.FontFamily, s.FontSize)
	return c.mapError(err)
}

func (c *PostgresClient) expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return c.mapError(err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: unexpected rows affected: %d", ErrUnavailable, n)
	}
}

// mapError folds driver and transport failures into the package sentinels.
func (c *PostgresClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28000", "28P01", "42501":
			return fmt.Errorf("%w: %s", ErrUnauthorized, pgErr.Message)
		}
	}
	return fmt.Errorf("%w: db error: %w", ErrUnavailable, err)
}

// encodeSocials returns the JSONB parameter for a socials map; nil maps are
// stored as NULL.
func encodeSocials(m map[string]string) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode socials: %w", err)
	}
	return string(b), nil
}

func decodeSocials(b []byte) (map[string]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: decode socials: %w", ErrUnavailable, err)
	}
	return m, nil
}

package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// missingReference maps a foreign key violation to the sentinel of the row
// that does not exist. It returns nil for any other error.
func missingReference(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return nil
	}
	for _, col := range []string{"member_id", "guest_id", "creator_id"} {
		if strings.Contains(pgErr.ConstraintName, col) {
			return ErrMemberNotFound
		}
	}
	return ErrItemNotFound
}

func (q *Queries) ListItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, name, path, item_type, COALESCE(creator_id, ''), is_pinned, show_chatbox,
			lat, lng, country, address_line, mime_type, created_at, updated_at
		FROM items
		ORDER BY seq
	`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var lat, lng *float64
		var country, addressLine *string
		err := rows.Scan(
			&item.ID, &item.Name, &item.Path, &item.Type, &item.CreatorID,
			&item.Settings.IsPinned, &item.Settings.ShowChatbox,
			&lat, &lng, &country, &addressLine, &item.MimeType,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			item.Geolocation = &models.Geolocation{Lat: *lat, Lng: *lng, Country: country, AddressLine: addressLine}
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		return []models.Item{}, nil
	}

	return items, nil
}

func (q *Queries) CreateItem(ctx context.Context, item models.Item) error {
	query := `
		INSERT INTO items (id, name, path, item_type, creator_id, is_pinned, show_chatbox,
			lat, lng, country, address_line, mime_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	var lat, lng *float64
	var country, addressLine *string
	if g := item.Geolocation; g != nil {
		lat, lng, country, addressLine = &g.Lat, &g.Lng, g.Country, g.AddressLine
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := q.db.Exec(ctx, query,
		item.ID, item.Name, item.Path, item.Type, item.CreatorID,
		item.Settings.IsPinned, item.Settings.ShowChatbox,
		lat, lng, country, addressLine, item.MimeType, createdAt, updatedAt,
	)
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return ErrItemExists
	case pgForeignKeyViolation:
		return missingReference(err)
	}
	return err
}

func (q *Queries) ListVisibilityTags(ctx context.Context) ([]models.VisibilityTag, error) {
	query := `SELECT id, item_id, kind, COALESCE(creator_id, ''), created_at FROM item_visibilities ORDER BY created_at, id`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.VisibilityTag
	for rows.Next() {
		var t models.VisibilityTag
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Kind, &t.CreatorID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (q *Queries) CreateVisibilityTag(ctx context.Context, tag models.VisibilityTag) error {
	query := `
		INSERT INTO item_visibilities (id, item_id, kind, creator_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	`
	id := tag.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := tag.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := q.db.Exec(ctx, query, id, tag.ItemID, tag.Kind, tag.CreatorID, createdAt)
	if ref := missingReference(err); ref != nil {
		return ref
	}
	return err
}

func (q *Queries) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	query := `SELECT id, member_id, item_id, permission, created_at FROM item_memberships ORDER BY created_at, id`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		var permission string
		if err := rows.Scan(&m.ID, &m.MemberID, &m.ItemID, &permission, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.Permission, err = models.ParsePermissionLevel(permission); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (q *Queries) CreateMembership(ctx context.Context, arg CreateMembershipParams) (*models.Membership, error) {
	query := `
		INSERT INTO item_memberships (id, member_id, item_id, permission)
		VALUES ($1, $2, $3, $4)
		RETURNING id, member_id, item_id, created_at
	`
	m := models.Membership{Permission: arg.Permission}
	err := q.db.QueryRow(ctx, query, uuid.New(), arg.MemberID, arg.ItemID, arg.Permission.String()).
		Scan(&m.ID, &m.MemberID, &m.ItemID, &m.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, ErrMembershipExists
		case pgForeignKeyViolation:
			return nil, missingReference(err)
		}
		return nil, err
	}
	return &m, nil
}

func (q *Queries) ListItemLoginSchemas(ctx context.Context) ([]models.ItemLoginSchema, error) {
	query := `SELECT id, item_id, type, created_at FROM item_login_schemas`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemas []models.ItemLoginSchema
	for rows.Next() {
		var s models.ItemLoginSchema
		if err := rows.Scan(&s.ID, &s.ItemID, &s.Type, &s.CreatedAt); err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, rows.Err()
}

func (q *Queries) CreateItemLoginSchema(ctx context.Context, schema models.ItemLoginSchema) error {
	query := `INSERT INTO item_login_schemas (id, item_id, type) VALUES ($1, $2, $3)`
	id := schema.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := q.db.Exec(ctx, query, id, schema.ItemID, schema.Type)
	if ref := missingReference(err); ref != nil {
		return ref
	}
	return err
}

func (q *Queries) CreateMember(ctx context.Context, m models.Member) error {
	query := `
		INSERT INTO members (id, name, email, password_hash, is_guest)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.PasswordHash, m.IsGuest)
	if pgErrorCode(err) == pgUniqueViolation {
		return ErrMemberExists
	}
	return err
}

func (q *Queries) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	query := `
		SELECT id, name, email, password_hash, is_guest, created_at
		FROM members
		WHERE id = $1
	`
	var m models.Member
	err := q.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.IsGuest, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (q *Queries) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	query := `
		SELECT id, name, email, password_hash, is_guest, created_at
		FROM members
		WHERE email = $1 AND NOT is_guest
	`
	var m models.Member
	err := q.db.QueryRow(ctx, query, email).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.IsGuest, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (q *Queries) GetGuest(ctx context.Context, itemID, name string) (*models.Member, error) {
	query := `
		SELECT id, name, email, password_hash, is_guest, created_at
		FROM members
		WHERE item_login_item_id = $1 AND name = $2 AND is_guest
	`
	var m models.Member
	err := q.db.QueryRow(ctx, query, itemID, name).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.IsGuest, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (q *Queries) CreateGuest(ctx context.Context, arg CreateGuestParams) (*models.Member, error) {
	query := `
		INSERT INTO members (id, name, password_hash, is_guest, item_login_item_id)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id, name, is_guest, created_at
	`
	m := models.Member{PasswordHash: arg.PasswordHash}
	err := q.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.PasswordHash, arg.ItemID).
		Scan(&m.ID, &m.Name, &m.IsGuest, &m.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrGuestExists
		}
		return nil, err
	}
	return &m, nil
}

func (q *Queries) CreateItemLoginSession(ctx context.Context, arg CreateItemLoginSessionParams) error {
	query := `
		INSERT INTO item_login_sessions (id, guest_id, item_id, user_agent, client_ip, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.db.Exec(ctx, query, arg.ID, arg.GuestID, arg.ItemID, arg.UserAgent, arg.ClientIP, arg.ExpiresAt)
	if ref := missingReference(err); ref != nil {
		return ref
	}
	return err
}

func (q *Queries) ListItemLoginSessions(ctx context.Context, guestID string) ([]models.ItemLoginSession, error) {
	query := `
		SELECT id, guest_id, item_id, user_agent, client_ip, expires_at, created_at
		FROM item_login_sessions
		WHERE guest_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
	`
	rows, err := q.db.Query(ctx, query, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.ItemLoginSession{}
	for rows.Next() {
		var s models.ItemLoginSession
		if err := rows.Scan(&s.ID, &s.GuestID, &s.ItemID, &s.UserAgent, &s.ClientIP, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (q *Queries) CreateMembershipRequest(ctx context.Context, memberID, itemID string) (*models.MembershipRequest, error) {
	query := `
		INSERT INTO membership_requests (id, member_id, item_id)
		VALUES ($1, $2, $3)
		RETURNING id, member_id, item_id, created_at
	`
	var r models.MembershipRequest
	err := q.db.QueryRow(ctx, query, uuid.New(), memberID, itemID).Scan(&r.ID, &r.MemberID, &r.ItemID, &r.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, ErrRequestAlreadyExists
		case pgForeignKeyViolation:
			return nil, missingReference(err)
		}
		return nil, err
	}
	return &r, nil
}

// Package sqlite is a single-file backend built on sqlx and the pure Go
// SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sqlx.DB
}

// Open connects to the database at dsn and creates the tables if needed.
// ":memory:" gives a private throwaway database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases alive and pragmas applied.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func sqliteCode(err error) int {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	code := sqliteCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isForeignKeyViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// missingReference finds out which side of a failed foreign key is absent;
// SQLite does not report the constraint name.
func (s *Store) missingReference(ctx context.Context, memberID, itemID string) error {
	var n int
	if memberID != "" {
		if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM members WHERE id = ?`, memberID); err != nil {
			return err
		}
		if n == 0 {
			return database.ErrMemberNotFound
		}
	}
	return database.ErrItemNotFound
}

type itemRow struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Path        string          `db:"path"`
	Type        string          `db:"item_type"`
	CreatorID   sql.NullString  `db:"creator_id"`
	IsPinned    bool            `db:"is_pinned"`
	ShowChatbox bool            `db:"show_chatbox"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lng         sql.NullFloat64 `db:"lng"`
	Country     *string         `db:"country"`
	AddressLine *string         `db:"address_line"`
	MimeType    *string         `db:"mime_type"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r itemRow) item() models.Item {
	item := models.Item{
		ID:        r.ID,
		Name:      r.Name,
		Path:      r.Path,
		Type:      models.ItemType(r.Type),
		CreatorID: r.CreatorID.String,
		Settings: models.ItemSettings{
			IsPinned:    r.IsPinned,
			ShowChatbox: r.ShowChatbox,
		},
		MimeType:  r.MimeType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Lat.Valid && r.Lng.Valid {
		item.Geolocation = &models.Geolocation{
			Lat:         r.Lat.Float64,
			Lng:         r.Lng.Float64,
			Country:     r.Country,
			AddressLine: r.AddressLine,
		}
	}
	return item
}

type tagRow struct {
	ID        uuid.UUID      `db:"id"`
	ItemID    string         `db:"item_id"`
	Kind      string         `db:"kind"`
	CreatorID sql.NullString `db:"creator_id"`
	CreatedAt time.Time      `db:"created_at"`
}

type membershipRow struct {
	ID         uuid.UUID `db:"id"`
	MemberID   string    `db:"member_id"`
	ItemID     string    `db:"item_id"`
	Permission string    `db:"permission"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r membershipRow) membership() (models.Membership, error) {
	level, err := models.ParsePermissionLevel(r.Permission)
	if err != nil {
		return models.Membership{}, err
	}
	return models.Membership{
		ID:         r.ID,
		MemberID:   r.MemberID,
		ItemID:     r.ItemID,
		Permission: level,
		CreatedAt:  r.CreatedAt,
	}, nil
}

type schemaRow struct {
	ID        uuid.UUID `db:"id"`
	ItemID    string    `db:"item_id"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// LoadSnapshot reads every table inside one transaction.
func (s *Store) LoadSnapshot(ctx context.Context) (*access.Snapshot, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var items []itemRow
	if err := tx.SelectContext(ctx, &items, `
		SELECT id, name, path, item_type, creator_id, is_pinned, show_chatbox,
			lat, lng, country, address_line, mime_type, created_at, updated_at
		FROM items ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	var tags []tagRow
	if err := tx.SelectContext(ctx, &tags, `
		SELECT id, item_id, kind, creator_id, created_at
		FROM item_visibilities ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("failed to list visibility tags: %w", err)
	}
	var memberships []membershipRow
	if err := tx.SelectContext(ctx, &memberships, `
		SELECT id, member_id, item_id, permission, created_at
		FROM item_memberships ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	var schemas []schemaRow
	if err := tx.SelectContext(ctx, &schemas, `
		SELECT id, item_id, type, created_at FROM item_login_schemas`); err != nil {
		return nil, fmt.Errorf("failed to list item login schemas: %w", err)
	}

	data := access.SnapshotData{
		Items:        make([]models.Item, 0, len(items)),
		Tags:         make([]models.VisibilityTag, 0, len(tags)),
		Memberships:  make([]models.Membership, 0, len(memberships)),
		LoginSchemas: make([]models.ItemLoginSchema, 0, len(schemas)),
	}
	for _, r := range items {
		data.Items = append(data.Items, r.item())
	}
	for _, r := range tags {
		data.Tags = append(data.Tags, models.VisibilityTag{
			ID:        r.ID,
			ItemID:    r.ItemID,
			Kind:      models.TagKind(r.Kind),
			CreatorID: r.CreatorID.String,
			CreatedAt: r.CreatedAt,
		})
	}
	for _, r := range memberships {
		m, err := r.membership()
		if err != nil {
			return nil, err
		}
		data.Memberships = append(data.Memberships, m)
	}
	for _, r := range schemas {
		data.LoginSchemas = append(data.LoginSchemas, models.ItemLoginSchema{
			ID:        r.ID,
			ItemID:    r.ItemID,
			Type:      models.ItemLoginSchemaType(r.Type),
			CreatedAt: r.CreatedAt,
		})
	}
	return access.NewSnapshot(data), nil
}

const memberColumns = `id, name, email, password_hash, is_guest, created_at`

func (s *Store) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	var m models.Member
	err := s.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	err := s.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE email = ? AND NOT is_guest`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetGuest(ctx context.Context, itemID, name string) (*models.Member, error) {
	var m models.Member
	err := s.db.GetContext(ctx, &m, `SELECT `+memberColumns+`
		FROM members WHERE item_login_item_id = ? AND name = ? AND is_guest`, itemID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) CreateGuest(ctx context.Context, arg database.CreateGuestParams) (*models.Member, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO members (id, name, password_hash, is_guest, item_login_item_id, created_at)
		VALUES (?, ?, ?, 1, ?, ?)`, arg.ID, arg.Name, arg.PasswordHash, arg.ItemID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, database.ErrGuestExists
		}
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO item_memberships (id, member_id, item_id, permission, created_at)
		VALUES (?, ?, ?, ?, ?)`, uuid.New(), arg.ID, arg.ItemID, models.PermissionRead.String(), now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, database.ErrItemNotFound
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &models.Member{
		ID:           arg.ID,
		Name:         arg.Name,
		PasswordHash: arg.PasswordHash,
		IsGuest:      true,
		CreatedAt:    now,
	}, nil
}

func (s *Store) CreateItemLoginSession(ctx context.Context, arg database.CreateItemLoginSessionParams) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO item_login_sessions (id, guest_id, item_id, user_agent, client_ip, expires_at, created_at)
		VALUES (:id, :guest_id, :item_id, :user_agent, :client_ip, :expires_at, :created_at)`,
		map[string]interface{}{
			"id":         arg.ID,
			"guest_id":   arg.GuestID,
			"item_id":    arg.ItemID,
			"user_agent": arg.UserAgent,
			"client_ip":  arg.ClientIP,
			"expires_at": arg.ExpiresAt.UTC(),
			"created_at": time.Now().UTC(),
		})
	if isForeignKeyViolation(err) {
		return s.missingReference(ctx, arg.GuestID, arg.ItemID)
	}
	return err
}

func (s *Store) CreateMembership(ctx context.Context, arg database.CreateMembershipParams) (*models.Membership, error) {
	m := models.Membership{
		ID:         uuid.New(),
		MemberID:   arg.MemberID,
		ItemID:     arg.ItemID,
		Permission: arg.Permission,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_memberships (id, member_id, item_id, permission, created_at)
		VALUES (?, ?, ?, ?, ?)`, m.ID, m.MemberID, m.ItemID, m.Permission.String(), m.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, database.ErrMembershipExists
		case isForeignKeyViolation(err):
			return nil, s.missingReference(ctx, arg.MemberID, arg.ItemID)
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) CreateMembershipRequest(ctx context.Context, memberID, itemID string) (*models.MembershipRequest, error) {
	r := models.MembershipRequest{
		ID:        uuid.New(),
		MemberID:  memberID,
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO membership_requests (id, member_id, item_id, created_at)
		VALUES (?, ?, ?, ?)`, r.ID, r.MemberID, r.ItemID, r.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, database.ErrRequestAlreadyExists
		case isForeignKeyViolation(err):
			return nil, s.missingReference(ctx, memberID, itemID)
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateMember(ctx context.Context, m models.Member) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO members (id, name, email, password_hash, is_guest, created_at)
		VALUES (:id, :name, :email, :password_hash, :is_guest, :created_at)`, m)
	if isUniqueViolation(err) {
		return database.ErrMemberExists
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateItem(ctx context.Context, item models.Item) error {
	row := itemRow{
		ID:          item.ID,
		Name:        item.Name,
		Path:        item.Path,
		Type:        string(item.Type),
		CreatorID:   nullString(item.CreatorID),
		IsPinned:    item.Settings.IsPinned,
		ShowChatbox: item.Settings.ShowChatbox,
		MimeType:    item.MimeType,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if g := item.Geolocation; g != nil {
		row.Lat = sql.NullFloat64{Float64: g.Lat, Valid: true}
		row.Lng = sql.NullFloat64{Float64: g.Lng, Valid: true}
		row.Country = g.Country
		row.AddressLine = g.AddressLine
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO items (id, name, path, item_type, creator_id, is_pinned, show_chatbox,
			lat, lng, country, address_line, mime_type, created_at, updated_at)
		VALUES (:id, :name, :path, :item_type, :creator_id, :is_pinned, :show_chatbox,
			:lat, :lng, :country, :address_line, :mime_type, :created_at, :updated_at)`, row)
	switch {
	case isUniqueViolation(err):
		return database.ErrItemExists
	case isForeignKeyViolation(err):
		return database.ErrMemberNotFound
	}
	return err
}

func (s *Store) CreateVisibilityTag(ctx context.Context, tag models.VisibilityTag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_visibilities (id, item_id, kind, creator_id, created_at)
		VALUES (?, ?, ?, ?, ?)`, tag.ID, tag.ItemID, string(tag.Kind), nullString(tag.CreatorID), tag.CreatedAt)
	if isForeignKeyViolation(err) {
		return s.missingReference(ctx, tag.CreatorID, tag.ItemID)
	}
	return err
}

func (s *Store) CreateItemLoginSchema(ctx context.Context, schema models.ItemLoginSchema) error {
	if schema.ID == uuid.Nil {
		schema.ID = uuid.New()
	}
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_login_schemas (id, item_id, type, created_at)
		VALUES (?, ?, ?, ?)`, schema.ID, schema.ItemID, string(schema.Type), schema.CreatedAt)
	if isForeignKeyViolation(err) {
		return database.ErrItemNotFound
	}
	return err
}

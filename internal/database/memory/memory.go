// Package memory keeps a whole hierarchy in process. It backs the server
// when no database is configured and is seeded from a YAML fixture.
package memory

import (
	"context"
	"sync"
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	members      map[string]models.Member
	guestItems   map[string]string
	items        []models.Item
	itemIndex    map[string]struct{}
	tags         []models.VisibilityTag
	memberships  []models.Membership
	loginSchemas []models.ItemLoginSchema
	sessions     []models.ItemLoginSession
	requests     []models.MembershipRequest
}

func New() *Store {
	return &Store{
		members:    make(map[string]models.Member),
		guestItems: make(map[string]string),
		itemIndex:  make(map[string]struct{}),
	}
}

// FromFixture builds a store holding everything in f.
func FromFixture(ctx context.Context, f *database.Fixture) (*Store, error) {
	s := New()
	if err := database.Seed(ctx, s, f); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) LoadSnapshot(_ context.Context) (*access.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return access.NewSnapshot(access.SnapshotData{
		Items:        s.items,
		Tags:         s.tags,
		Memberships:  s.memberships,
		LoginSchemas: s.loginSchemas,
	}), nil
}

func (s *Store) GetMemberByID(_ context.Context, id string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *Store) GetMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if !m.IsGuest && m.Email != nil && *m.Email == email {
			return &m, nil
		}
	}
	return nil, nil
}

func (s *Store) GetGuest(_ context.Context, itemID, name string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.findGuest(itemID, name); ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) findGuest(itemID, name string) (models.Member, bool) {
	for id, item := range s.guestItems {
		if item != itemID {
			continue
		}
		if m := s.members[id]; m.Name == name {
			return m, true
		}
	}
	return models.Member{}, false
}

func (s *Store) CreateGuest(_ context.Context, arg database.CreateGuestParams) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[arg.ItemID]; !ok {
		return nil, database.ErrItemNotFound
	}
	if _, ok := s.findGuest(arg.ItemID, arg.Name); ok {
		return nil, database.ErrGuestExists
	}

	now := time.Now()
	guest := models.Member{
		ID:           arg.ID,
		Name:         arg.Name,
		PasswordHash: arg.PasswordHash,
		IsGuest:      true,
		CreatedAt:    now,
	}
	s.members[guest.ID] = guest
	s.guestItems[guest.ID] = arg.ItemID
	s.memberships = append(s.memberships, models.Membership{
		ID:         uuid.New(),
		MemberID:   guest.ID,
		ItemID:     arg.ItemID,
		Permission: models.PermissionRead,
		CreatedAt:  now,
	})
	return &guest, nil
}

func (s *Store) CreateItemLoginSession(_ context.Context, arg database.CreateItemLoginSessionParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[arg.ItemID]; !ok {
		return database.ErrItemNotFound
	}
	if _, ok := s.members[arg.GuestID]; !ok {
		return database.ErrMemberNotFound
	}
	s.sessions = append(s.sessions, models.ItemLoginSession{
		ID:        arg.ID,
		GuestID:   arg.GuestID,
		ItemID:    arg.ItemID,
		UserAgent: arg.UserAgent,
		ClientIP:  arg.ClientIP,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *Store) CreateMembership(_ context.Context, arg database.CreateMembershipParams) (*models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[arg.ItemID]; !ok {
		return nil, database.ErrItemNotFound
	}
	if _, ok := s.members[arg.MemberID]; !ok {
		return nil, database.ErrMemberNotFound
	}
	for _, m := range s.memberships {
		if m.MemberID == arg.MemberID && m.ItemID == arg.ItemID {
			return nil, database.ErrMembershipExists
		}
	}
	m := models.Membership{
		ID:         uuid.New(),
		MemberID:   arg.MemberID,
		ItemID:     arg.ItemID,
		Permission: arg.Permission,
		CreatedAt:  time.Now(),
	}
	s.memberships = append(s.memberships, m)
	return &m, nil
}

func (s *Store) CreateMembershipRequest(_ context.Context, memberID, itemID string) (*models.MembershipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[itemID]; !ok {
		return nil, database.ErrItemNotFound
	}
	for _, r := range s.requests {
		if r.MemberID == memberID && r.ItemID == itemID {
			return nil, database.ErrRequestAlreadyExists
		}
	}
	r := models.MembershipRequest{
		ID:        uuid.New(),
		MemberID:  memberID,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}
	s.requests = append(s.requests, r)
	return &r, nil
}

func (s *Store) CreateMember(_ context.Context, m models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.members[m.ID] = m
	return nil
}

func (s *Store) CreateItem(_ context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[item.ID]; ok {
		return database.ErrItemExists
	}
	s.itemIndex[item.ID] = struct{}{}
	s.items = append(s.items, item)
	return nil
}

func (s *Store) CreateVisibilityTag(_ context.Context, tag models.VisibilityTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[tag.ItemID]; !ok {
		return database.ErrItemNotFound
	}
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	s.tags = append(s.tags, tag)
	return nil
}

func (s *Store) CreateItemLoginSchema(_ context.Context, schema models.ItemLoginSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.itemIndex[schema.ItemID]; !ok {
		return database.ErrItemNotFound
	}
	if schema.ID == uuid.Nil {
		schema.ID = uuid.New()
	}
	s.loginSchemas = append(s.loginSchemas, schema)
	return nil
}

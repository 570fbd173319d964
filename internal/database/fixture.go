package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture is a whole hierarchy in one YAML document.
type Fixture struct {
	Members      []models.Member          `yaml:"members"`
	Items        []models.Item            `yaml:"items"`
	Tags         []models.VisibilityTag   `yaml:"tags"`
	Memberships  []models.Membership      `yaml:"memberships"`
	LoginSchemas []models.ItemLoginSchema `yaml:"login_schemas"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	f.normalize(time.Now())
	return &f, nil
}

// normalize fills what YAML authors usually leave out: root paths, ids and
// timestamps.
func (f *Fixture) normalize(now time.Time) {
	for i := range f.Members {
		if f.Members[i].CreatedAt.IsZero() {
			f.Members[i].CreatedAt = now
		}
	}
	for i := range f.Items {
		item := &f.Items[i]
		if item.Path == "" {
			item.Path = access.BuildPath("", item.ID)
		}
		if item.Type == "" {
			item.Type = models.ItemTypeFolder
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = item.CreatedAt
		}
	}
	for i := range f.Tags {
		if f.Tags[i].ID == uuid.Nil {
			f.Tags[i].ID = uuid.New()
		}
		if f.Tags[i].CreatedAt.IsZero() {
			f.Tags[i].CreatedAt = now
		}
	}
	for i := range f.Memberships {
		if f.Memberships[i].ID == uuid.Nil {
			f.Memberships[i].ID = uuid.New()
		}
		if f.Memberships[i].CreatedAt.IsZero() {
			f.Memberships[i].CreatedAt = now
		}
	}
	for i := range f.LoginSchemas {
		if f.LoginSchemas[i].ID == uuid.Nil {
			f.LoginSchemas[i].ID = uuid.New()
		}
		if f.LoginSchemas[i].CreatedAt.IsZero() {
			f.LoginSchemas[i].CreatedAt = now
		}
	}
}

func (f *Fixture) SnapshotData() access.SnapshotData {
	return access.SnapshotData{
		Items:        f.Items,
		Tags:         f.Tags,
		Memberships:  f.Memberships,
		LoginSchemas: f.LoginSchemas,
	}
}

// Seed writes the fixture into s, parents before children.
func Seed(ctx context.Context, s Seeder, f *Fixture) error {
	for _, m := range f.Members {
		if err := s.CreateMember(ctx, m); err != nil {
			return fmt.Errorf("failed to create member %s: %w", m.ID, err)
		}
	}
	for _, item := range f.Items {
		if err := s.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("failed to create item %s: %w", item.ID, err)
		}
	}
	for _, t := range f.Tags {
		if err := s.CreateVisibilityTag(ctx, t); err != nil {
			return fmt.Errorf("failed to tag item %s: %w", t.ItemID, err)
		}
	}
	for _, schema := range f.LoginSchemas {
		if err := s.CreateItemLoginSchema(ctx, schema); err != nil {
			return fmt.Errorf("failed to create login schema on %s: %w", schema.ItemID, err)
		}
	}
	for _, m := range f.Memberships {
		_, err := s.CreateMembership(ctx, CreateMembershipParams{
			MemberID:   m.MemberID,
			ItemID:     m.ItemID,
			Permission: m.Permission,
		})
		if err != nil {
			return fmt.Errorf("failed to create membership of %s on %s: %w", m.MemberID, m.ItemID, err)
		}
	}
	return nil
}

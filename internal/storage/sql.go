package storage

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/invoicely/pkg/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SlotRecord is one named slot row.
type SlotRecord struct {
	Name      string         `gorm:"primaryKey;type:varchar(128)"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (SlotRecord) TableName() string { return "storage_slots" }

// SQL keeps the slot in the storage_slots table.
type SQL struct {
	name string
	repo repository.Repository[SlotRecord]
	now  func() time.Time
}

func NewSQL(db *gorm.DB, name string) (*SQL, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidSlotName
	}
	return &SQL{
		name: name,
		repo: repository.ProvideStore[SlotRecord](db),
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQL) Read(ctx context.Context) ([]byte, bool, error) {
	row, err := s.repo.FindOne(ctx, &SlotRecord{Name: s.name})
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

func (s *SQL) Write(ctx context.Context, payload []byte) error {
	return s.repo.Upsert(ctx, &SlotRecord{
		Name:      s.name,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: s.now(),
	}, []string{"name"}, []string{"payload", "updated_at"})
}

func (s *SQL) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, &SlotRecord{Name: s.name})
}

func (s *SQL) Driver() string { return "sql" }

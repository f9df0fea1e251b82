package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-fieldtrack/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRow is one stored snapshot, keyed like an entry of a key-value store.
type SnapshotRow struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(100);primaryKey"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SnapshotRow) TableName() string {
	return "app_snapshots"
}

type gormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore keeps the snapshot in the app_snapshots table of any gorm
// dialect (sqlite by default, postgres in shared deployments).
func NewGormStore(db *gorm.DB, key string) Store {
	if key == "" {
		key = DefaultKey
	}
	return &gormStore{db: db, key: key}
}

// Migrate creates the app_snapshots table when it does not exist.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&SnapshotRow{})
}

func (s *gormStore) Load(ctx context.Context) (domain.Snapshot, error) {
	var row SnapshotRow
	err := s.db.WithContext(ctx).
		Where("snapshot_key = ?", s.key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot %s: %w", s.key, err)
	}
	return Decode(s.key, []byte(row.Payload))
}

func (s *gormStore) Save(ctx context.Context, snap domain.Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	row := SnapshotRow{
		Key:       s.key,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.key, err)
	}
	return nil
}

package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// Record is one JSON document in the local SQLite database.
type Record struct {
	Collection string    `gorm:"primaryKey;size:64"`
	ID         string    `gorm:"primaryKey;size:64"`
	Data       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Record) TableName() string { return "app_records" }

// Store is the offline fallback backed by a CGO-free SQLite file.
type Store struct {
	db     *gorm.DB
	dbPath string
}

// Open creates the database directory, opens the file and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to run local migrations: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.dbPath }

func (s *Store) Get(ctx context.Context, c repository.Collection, id string) ([]byte, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", string(c), id).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c, id, err)
	}
	return []byte(rec.Data), nil
}

func (s *Store) List(ctx context.Context, c repository.Collection) ([][]byte, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("collection = ?", string(c)).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	out := make([][]byte, 0, len(recs))
	for _, r := range recs {
		out = append(out, []byte(r.Data))
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, c repository.Collection, id string, doc []byte) error {
	rec := Record{Collection: string(c), ID: id, Data: string(doc)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to put %s %s: %w", c, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c repository.Collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", string(c), id).
		Delete(&Record{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

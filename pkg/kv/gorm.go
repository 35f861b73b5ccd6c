package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// blobRecord is one row of the generic blob table
type blobRecord struct {
	Key       string    `gorm:"column:blob_key;primaryKey;size:191"`
	Value     string    `gorm:"column:blob_value;type:longtext"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name
func (blobRecord) TableName() string {
	return "pinwall_blobs"
}

// Gorm is a Store backed by a key/value table in a relational database
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates the blob table if needed and returns the store
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) (string, bool, error) {
	var rec blobRecord
	err := g.db.WithContext(ctx).Where("blob_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	rec := blobRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"blob_value", "updated_at"}),
	}).Create(&rec).Error
}

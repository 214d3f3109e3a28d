package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ClaimRecord is a persisted claim/verdict pair
type ClaimRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClaimText   string    `gorm:"type:text" json:"claim_text"`
	VerdictText string    `gorm:"type:text" json:"verdict_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the table name stable
func (ClaimRecord) TableName() string {
	return "claims"
}

// Repository saves checked claims. It is optional infrastructure: the
// pipeline runs without one when no DSN is configured.
type Repository struct {
	db *gorm.DB
}

// Open connects to MySQL and migrates the claims table
func Open(dsn string) (*Repository, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&ClaimRecord{}); err != nil {
		return nil, fmt.Errorf("migrate claims table: %w", err)
	}

	return &Repository{db: db}, nil
}

// Save persists a claim and its verdict
func (r *Repository) Save(ctx context.Context, claimText, verdictText string) error {
	record := ClaimRecord{
		ClaimText:   claimText,
		VerdictText: verdictText,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("save claim: %w", err)
	}
	return nil
}

// Recent returns the most recently checked claims, newest first
func (r *Repository) Recent(ctx context.Context, limit int) ([]ClaimRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []ClaimRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return records, nil
}

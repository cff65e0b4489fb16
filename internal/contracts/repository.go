package contracts

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	CreateRecord(ctx context.Context, rec *ContractRecord) error
	ListRecords(ctx context.Context, customerID string) ([]ContractRecord, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&ContractRecord{}); err != nil {
		return nil, fmt.Errorf("contracts: migrating schema: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) CreateRecord(ctx context.Context, rec *ContractRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *gormRepository) ListRecords(ctx context.Context, customerID string) ([]ContractRecord, error) {
	var records []ContractRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

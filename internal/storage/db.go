// Package storage persists ledger records in SQLite through gorm.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NgigiN/carteira/internal/ledger"
	"github.com/NgigiN/carteira/internal/logger"
)

// Database implements ledger.Store.
type Database struct {
	db  *gorm.DB
	log zerolog.Logger
}

var _ ledger.Store = (*Database)(nil)

func NewDatabase(dbPath string, log zerolog.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db, log: logger.Component(log, "storage")}, nil
}

// Append stores records in one database transaction: either all of them
// are saved or none is.
func (d *Database) Append(ctx context.Context, records ...ledger.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, ledger.ErrEmptyBatch
	}
	rows := make([]Transaction, len(records))
	ids := make([]string, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		r.ID = uuid.NewString()
		ids[i] = r.ID
		rows[i] = fromRecord(r)
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}
	d.log.Debug().Int("records", len(rows)).Str("owner", records[0].Owner).Msg("records saved")
	return ids, nil
}

func (d *Database) List(ctx context.Context, f ledger.Filter) ([]ledger.Record, error) {
	q := d.db.WithContext(ctx).Model(&Transaction{})
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("date < ?", f.To.UTC())
	}
	if f.Type != "" {
		q = q.Where("type = ?", string(f.Type))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.Source != "" {
		q = q.Where("source = ?", string(f.Source))
	}
	if f.ParentID != "" {
		q = q.Where("parent_id = ?", f.ParentID)
	}
	if f.InstallmentsOnly {
		q = q.Where("installment_total > 1")
	}

	var rows []Transaction
	if err := q.Order("date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	records := make([]ledger.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

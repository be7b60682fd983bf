package storage

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NgigiN/carteira/internal/ledger"
)

// Transaction is the stored form of a ledger record. Installment columns
// are zero for at-once purchases.
type Transaction struct {
	gorm.Model
	RecordID          string          `gorm:"uniqueIndex;not null"`
	Owner             string          `gorm:"index;not null"`
	Type              string          `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category          string          `gorm:"index"`
	Description       string
	Date              time.Time `gorm:"index;not null"`
	PaymentMethod     string
	Source            string
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2)"`
	ParentID          string          `gorm:"index"`
	InstallmentNumber int
	InstallmentTotal  int
	DueDate           *time.Time
	Paid              bool
}

func fromRecord(r ledger.Record) Transaction {
	tx := Transaction{
		RecordID:      r.ID,
		Owner:         r.Owner,
		Type:          string(r.Type),
		Amount:        r.Amount,
		Category:      r.Category,
		Description:   r.Description,
		Date:          r.Date.UTC(),
		PaymentMethod: r.PaymentMethod,
		Source:        string(r.Source),
		TotalAmount:   r.TotalAmount,
		ParentID:      r.ParentID,
	}
	if r.Installment != nil {
		due := r.Installment.DueDate.UTC()
		tx.InstallmentNumber = r.Installment.Number
		tx.InstallmentTotal = r.Installment.Total
		tx.DueDate = &due
		tx.Paid = r.Installment.Paid
	}
	return tx
}

func (t Transaction) toRecord() ledger.Record {
	r := ledger.Record{
		ID:            t.RecordID,
		Owner:         t.Owner,
		Type:          ledger.Type(t.Type),
		Amount:        t.Amount,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Source:        ledger.Source(t.Source),
		TotalAmount:   t.TotalAmount,
		ParentID:      t.ParentID,
	}
	if t.InstallmentTotal > 0 {
		r.Installment = &ledger.Installment{
			Number: t.InstallmentNumber,
			Total:  t.InstallmentTotal,
			Amount: t.Amount,
			Paid:   t.Paid,
		}
		if t.DueDate != nil {
			r.Installment.DueDate = *t.DueDate
		}
	}
	return r
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

const (
	FinePaymentPending  = "pending"
	FinePaymentApproved = "approved"
	FinePaymentRejected = "rejected"
)

// FinePayment represents a request to settle outstanding fines (table pembayaran_denda)
type FinePayment struct {
	ID          int64           `json:"id" db:"id"`
	NIS         string          `json:"nis" db:"nis"`
	StudentName string          `json:"nama_siswa,omitempty" db:"nama_siswa"`
	Amount      decimal.Decimal `json:"jumlah" db:"jumlah"`
	ProofURL    *string         `json:"bukti_pembayaran,omitempty" db:"bukti_pembayaran"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	ProcessedBy *string         `json:"diproses_oleh,omitempty" db:"diproses_oleh"`
	ProcessedAt *time.Time      `json:"diproses_pada,omitempty" db:"diproses_pada"`
	pagination.Counted
}

type FinePaymentRequest struct {
	Amount   decimal.Decimal `json:"jumlah"`
	ProofURL string          `json:"bukti_pembayaran" validate:"omitempty,url"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// LoanStatus is the circulation state of a sirkulasi row.
type LoanStatus string

const (
	LoanStatusPending          LoanStatus = "pending"
	LoanStatusBorrowed         LoanStatus = "dipinjam"
	LoanStatusReturnPending    LoanStatus = "return_pending"
	LoanStatusExtensionPending LoanStatus = "extension_pending"
	LoanStatusReturned         LoanStatus = "dikembalikan"
	LoanStatusRejected         LoanStatus = "rejected"
)

// Terminal reports whether no further transition can leave s.
func (s LoanStatus) Terminal() bool {
	return s == LoanStatusReturned || s == LoanStatusRejected
}

// Valid reports whether s is one of the known statuses.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusPending, LoanStatusBorrowed, LoanStatusReturnPending,
		LoanStatusExtensionPending, LoanStatusReturned, LoanStatusRejected:
		return true
	}
	return false
}

// Loan represents a circulation record (table sirkulasi)
type Loan struct {
	ID             int64           `json:"id_sirkulasi" db:"id_sirkulasi"`
	NIS            string          `json:"nis" db:"nis"`
	BookID         int64           `json:"id_buku" db:"id_buku"`
	BorrowedAt     time.Time       `json:"tanggal_pinjam" db:"tanggal_pinjam"`
	DueAt          time.Time       `json:"tanggal_jatuh_tempo" db:"tanggal_jatuh_tempo"`
	ReturnedAt     *time.Time      `json:"tanggal_kembali" db:"tanggal_kembali"`
	Status         LoanStatus      `json:"status" db:"status"`
	Fine           decimal.Decimal `json:"denda" db:"denda"`
	ExtensionCount int             `json:"jumlah_perpanjangan" db:"jumlah_perpanjangan"`
	RequestedDueAt *time.Time      `json:"tanggal_perpanjangan" db:"tanggal_perpanjangan"`
}

// LoanView is a loan joined with the borrower and book it refers to.
type LoanView struct {
	Loan
	StudentName  string `json:"nama_siswa" db:"nama_siswa"`
	StudentClass string `json:"kelas" db:"kelas"`
	BookTitle    string `json:"judul_buku" db:"judul_buku"`
	pagination.Counted
}

// ProcedureResult is the {success, message} envelope some stored procedures return.
type ProcedureResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BorrowRequest is a student's request to borrow a book until ReturnDate.
type BorrowRequest struct {
	BookID     int64  `json:"id_buku" validate:"required,gt=0"`
	ReturnDate string `json:"tanggal_kembali" validate:"required,datetime=2006-01-02"`
}

// BorrowEligibility tells the borrow dialog whether its confirm action is enabled.
type BorrowEligibility struct {
	CanBorrow   bool   `json:"can_borrow"`
	Reason      string `json:"reason,omitempty"`
	ActiveLoans int    `json:"sedang_pinjam"`
	MaxLoans    int    `json:"max_peminjaman"`
	EarliestDue string `json:"tanggal_kembali_min"`
	LatestDue   string `json:"tanggal_kembali_max"`
}

// LoanStatusCount is one bar of the dashboard summary.
type LoanStatusCount struct {
	Status LoanStatus `json:"status" db:"status"`
	Total  int64      `json:"total" db:"total"`
}

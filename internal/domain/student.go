package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// StudentStatus is the account state of a siswa row.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "aktif"
	StudentStatusInactive StudentStatus = "nonaktif"
	StudentStatusPending  StudentStatus = "pending"
	StudentStatusRejected StudentStatus = "rejected"
)

// Student represents a library member (table siswa). The aggregate
// counters are maintained by stored procedures only.
type Student struct {
	NIS             string          `json:"nis" db:"nis"`
	Name            string          `json:"nama" db:"nama"`
	Class           string          `json:"kelas" db:"kelas"`
	Email           *string         `json:"email,omitempty" db:"email"`
	PasswordHash    string          `json:"-" db:"password"`
	TotalLoans      int             `json:"total_pinjam" db:"total_pinjam"`
	ActiveLoans     int             `json:"sedang_pinjam" db:"sedang_pinjam"`
	MaxLoans        int             `json:"max_peminjaman" db:"max_peminjaman"`
	TotalFine       decimal.Decimal `json:"total_denda" db:"total_denda"`
	Status          StudentStatus   `json:"status" db:"status"`
	BorrowingStatus string          `json:"status_peminjaman" db:"status_peminjaman"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	pagination.Counted
}

// StudentForm is either CreateStudent or EditStudent.
type StudentForm interface {
	isStudentForm()
}

// CreateStudent carries every field a new account needs.
type CreateStudent struct {
	NIS      string  `json:"nis" validate:"required,numeric,min=4,max=20"`
	Name     string  `json:"nama" validate:"required,max=100"`
	Class    string  `json:"kelas" validate:"required,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	MaxLoans int     `json:"max_peminjaman" validate:"omitempty,gt=0,lte=10"`
}

// EditStudent changes only the fields that are set; the password stays when nil.
type EditStudent struct {
	NIS      string  `json:"-" validate:"required"`
	Name     *string `json:"nama" validate:"omitempty,min=1,max=100"`
	Class    *string `json:"kelas" validate:"omitempty,min=1,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	MaxLoans *int    `json:"max_peminjaman" validate:"omitempty,gt=0,lte=10"`
}

func (CreateStudent) isStudentForm() {}
func (EditStudent) isStudentForm()   {}

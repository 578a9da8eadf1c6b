package domain

import (
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// Admin is a library staff account
type Admin struct {
	ID           int64  `json:"id_admin" db:"id_admin"`
	Username     string `json:"username" db:"username"`
	Name         string `json:"nama" db:"nama"`
	PasswordHash string `json:"-" db:"password"`
}

// AdminLog is one audit entry (table admin_logs)
type AdminLog struct {
	ID            int64     `json:"id" db:"id"`
	AdminID       int64     `json:"admin_id" db:"admin_id"`
	AdminUsername string    `json:"admin_username" db:"admin_username"`
	Action        string    `json:"action" db:"action"`
	Details       string    `json:"details" db:"details"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	pagination.Counted
}

// Actor identifies who performs an admin action.
type Actor struct {
	AdminID  int64
	Username string
}

const (
	LibraryOpen    = "buka"
	LibraryClosed  = "tutup"
	LibraryHoliday = "libur"
)

// LibraryStatus is the open/closed switch (table pengaturan_perpustakaan)
type LibraryStatus struct {
	Status    string    `json:"status" db:"status"`
	Note      string    `json:"keterangan" db:"keterangan"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Open reports whether borrowing is allowed.
func (s LibraryStatus) Open() bool {
	return s.Status != LibraryClosed && s.Status != LibraryHoliday
}

type LibraryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=buka tutup libur"`
	Note   string `json:"keterangan" validate:"max=255"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Subject   string    `json:"subject"`
	Name      string    `json:"nama"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DashboardSummary feeds the admin landing page.
type DashboardSummary struct {
	LoansByStatus   []LoanStatusCount `json:"sirkulasi_per_status"`
	VisitorsPresent int64             `json:"pengunjung_hadir"`
	PendingStudents int64             `json:"siswa_menunggu"`
	PendingPayments int64             `json:"pembayaran_menunggu"`
}

package domain

import (
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

const (
	VisitorPresent  = "berkunjung"
	VisitorDeparted = "selesai"
)

// Visitor is a guest book entry (table buku_tamu). Guests need not be students.
type Visitor struct {
	ID        int64     `json:"id" db:"id"`
	NIS       *string   `json:"nis,omitempty" db:"nis"`
	Name      string    `json:"nama" db:"nama"`
	Class     *string   `json:"kelas,omitempty" db:"kelas"`
	Purpose   *string   `json:"keperluan,omitempty" db:"keperluan"`
	VisitDate time.Time `json:"tanggal_kunjungan" db:"tanggal_kunjungan"`
	VisitTime string    `json:"waktu_kunjungan" db:"waktu_kunjungan"`
	Status    string    `json:"status" db:"status"`
	pagination.Counted
}

type VisitorCheckIn struct {
	NIS     *string `json:"nis" validate:"omitempty,numeric"`
	Name    string  `json:"nama" validate:"required,max=100"`
	Class   *string `json:"kelas" validate:"omitempty,max=20"`
	Purpose *string `json:"keperluan" validate:"omitempty,max=255"`
}

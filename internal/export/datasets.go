package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// Dataset names an exportable list.
type Dataset string

const (
	DatasetCirculation Dataset = "circulation"
	DatasetStudents    Dataset = "students"
	DatasetVisitors    Dataset = "visitors"
	DatasetFines       Dataset = "fines"
)

func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DatasetCirculation, DatasetStudents, DatasetVisitors, DatasetFines:
		return d, nil
	}
	return "", customError.NewBusinessError(customError.ErrCodeValidation,
		fmt.Sprintf("unknown export dataset %q", s), customError.ErrValidation)
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func LoanTable(rows []domain.LoanView, loc *time.Location) Table {
	t := Table{
		Title: "Data Sirkulasi",
		Headers: []string{
			"ID", "NIS", "Nama Siswa", "Kelas", "Judul Buku", "Tanggal Pinjam",
			"Jatuh Tempo", "Tanggal Kembali", "Status", "Denda", "Perpanjangan",
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.NIS,
			r.StudentName,
			r.StudentClass,
			r.BookTitle,
			formatTime(r.BorrowedAt, loc, dateTimeLayout),
			formatTime(r.DueAt, loc, dateLayout),
			formatTimePtr(r.ReturnedAt, loc, dateTimeLayout),
			string(r.Status),
			r.Fine.StringFixed(0),
			strconv.Itoa(r.ExtensionCount),
		})
	}
	return t
}

func StudentTable(rows []domain.Student) Table {
	t := Table{
		Title: "Data Siswa",
		Headers: []string{
			"NIS", "Nama", "Kelas", "Email", "Total Pinjam", "Sedang Pinjam",
			"Maks Pinjam", "Total Denda", "Status", "Status Peminjaman",
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.NIS,
			r.Name,
			r.Class,
			deref(r.Email),
			strconv.Itoa(r.TotalLoans),
			strconv.Itoa(r.ActiveLoans),
			strconv.Itoa(r.MaxLoans),
			r.TotalFine.StringFixed(0),
			string(r.Status),
			r.BorrowingStatus,
		})
	}
	return t
}

func VisitorTable(rows []domain.Visitor) Table {
	t := Table{
		Title:   "Data Pengunjung",
		Headers: []string{"ID", "NIS", "Nama", "Kelas", "Keperluan", "Tanggal", "Waktu", "Status"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			deref(r.NIS),
			r.Name,
			deref(r.Class),
			deref(r.Purpose),
			r.VisitDate.Format(dateLayout),
			r.VisitTime,
			r.Status,
		})
	}
	return t
}

func FinePaymentTable(rows []domain.FinePayment, loc *time.Location) Table {
	t := Table{
		Title:   "Data Pembayaran Denda",
		Headers: []string{"ID", "NIS", "Nama Siswa", "Jumlah", "Bukti", "Status", "Diajukan", "Diproses Oleh", "Diproses Pada"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.NIS,
			r.StudentName,
			r.Amount.StringFixed(0),
			deref(r.ProofURL),
			r.Status,
			formatTime(r.CreatedAt, loc, dateTimeLayout),
			deref(r.ProcessedBy),
			formatTimePtr(r.ProcessedAt, loc, dateTimeLayout),
		})
	}
	return t
}

func formatTime(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

func formatTimePtr(t *time.Time, loc *time.Location, layout string) string {
	if t == nil {
		return ""
	}
	return formatTime(*t, loc, layout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

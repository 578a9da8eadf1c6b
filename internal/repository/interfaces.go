package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// Procedures invokes the stored procedures that own every state change on
// loans, student aggregates and fine payments.
type Procedures interface {
	// BorrowBook creates a pending loan
	BorrowBook(ctx context.Context, nis string, bookID int64, borrowedAt, dueAt time.Time) error

	// RequestReturn moves an active loan to return_pending
	RequestReturn(ctx context.Context, loanID int64, nis string) error

	// ExtendBorrowPeriod moves an active loan to extension_pending
	ExtendBorrowPeriod(ctx context.Context, loanID int64, nis string, days int) error

	ApproveBorrow(ctx context.Context, loanID int64) error
	RejectBorrow(ctx context.Context, loanID int64) error
	ApproveReturn(ctx context.Context, loanID int64) error
	RejectReturn(ctx context.Context, loanID int64) error
	ApproveExtension(ctx context.Context, loanID int64) error
	RejectExtension(ctx context.Context, loanID int64) error

	// CalculateOverdueFines runs the server-side fine batch
	CalculateOverdueFines(ctx context.Context) error

	RequestFinePayment(ctx context.Context, nis string, amount decimal.Decimal, proofURL string) error
	ApproveFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error
	RejectFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error
}

// LoanRepository reads circulation records
type LoanRepository interface {
	// GetByID retrieves a loan with its borrower and book
	GetByID(ctx context.Context, id int64) (*domain.LoanView, error)

	// List returns one page of the admin circulation view
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error)

	// ListByStudent returns one page of a student's history
	ListByStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error)

	// CountByStatus groups all loans by status
	CountByStatus(ctx context.Context) ([]domain.LoanStatusCount, error)
}

// StudentRepository manages siswa rows. Aggregate counters are never written here.
type StudentRepository interface {
	GetByNIS(ctx context.Context, nis string) (*domain.Student, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error)
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	UpdateStatus(ctx context.Context, nis string, status domain.StudentStatus) error
	CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error)
}

// FinePaymentRepository reads pembayaran_denda rows
type FinePaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.FinePayment, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// VisitorRepository manages the guest book
type VisitorRepository interface {
	Create(ctx context.Context, visitor *domain.Visitor) error
	GetByID(ctx context.Context, id int64) (*domain.Visitor, error)
	// FindOpen returns the student's entry still marked present on day, if any
	FindOpen(ctx context.Context, nis string, day time.Time) (*domain.Visitor, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// CloseBefore marks every entry still present before day as departed
	CloseBefore(ctx context.Context, day time.Time) (int64, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error)
	CountPresent(ctx context.Context, day time.Time) (int64, error)
}

// BookRepository manages the catalog
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error)
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// AdminRepository reads staff accounts and writes the audit trail
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Log(ctx context.Context, entry *domain.AdminLog) error
	ListLogs(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error)
}

// SettingsRepository holds the library open/closed switch
type SettingsRepository interface {
	GetLibraryStatus(ctx context.Context) (*domain.LibraryStatus, error)
	SetLibraryStatus(ctx context.Context, status *domain.LibraryStatus) error
}

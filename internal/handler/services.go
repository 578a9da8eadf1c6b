package handler

import (
	"context"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/export"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
)

// The interfaces below are the parts of the services each handler calls.

type CirculationService interface {
	RequestBorrow(ctx context.Context, nis string, req domain.BorrowRequest) (*domain.Student, error)
	Eligibility(ctx context.Context, nis string) (*domain.BorrowEligibility, error)
	RequestReturn(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error)
	RequestExtension(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error)
	ApproveBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	RejectBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	ApproveReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	RejectReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	ApproveExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	RejectExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)
	CalculateOverdueFines(ctx context.Context, actor *domain.Actor) error
	GetLoan(ctx context.Context, loanID int64) (*domain.LoanView, error)
	GetStudentLoan(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error)
	ListLoans(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error)
	StudentHistory(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error)
}

type FineService interface {
	RequestPayment(ctx context.Context, nis string, req domain.FinePaymentRequest) (*domain.Student, error)
	Approve(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error)
	Reject(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error)
	Get(ctx context.Context, paymentID int64) (*domain.FinePayment, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error)
	ListForStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.FinePayment], error)
}

type StudentService interface {
	Register(ctx context.Context, form domain.CreateStudent) (*domain.Student, error)
	Save(ctx context.Context, actor domain.Actor, form domain.StudentForm) (*domain.Student, error)
	Approve(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error)
	Reject(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error)
	Activate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error)
	Deactivate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error)
	Get(ctx context.Context, nis string) (*domain.Student, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error)
}

type VisitorService interface {
	CheckIn(ctx context.Context, form domain.VisitorCheckIn) (*domain.Visitor, error)
	CheckOut(ctx context.Context, id int64) (*domain.Visitor, error)
	Toggle(ctx context.Context, id int64) (*domain.Visitor, error)
	CountPresent(ctx context.Context) (int64, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error)
}

type CatalogService interface {
	Save(ctx context.Context, actor domain.Actor, form domain.BookForm) (*domain.Book, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	Get(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, actor domain.Actor, req domain.CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor domain.Actor, id int64) error
}

type LibraryService interface {
	Status(ctx context.Context) (*domain.LibraryStatus, error)
	SetStatus(ctx context.Context, actor domain.Actor, req domain.LibraryStatusRequest) (*domain.LibraryStatus, error)
}

type ReportService interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	Export(ctx context.Context, dataset export.Dataset, format export.Format, q pagination.Query) (*export.File, error)
	AuditLog(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error)
}

// Authenticator resolves a bearer token to its session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

type AuthService interface {
	Authenticator
	LoginStudent(ctx context.Context, nis, password string) (*domain.LoginResponse, error)
	LoginAdmin(ctx context.Context, username, password string) (*domain.LoginResponse, error)
	Logout(ctx context.Context, sess *session.Session) error
}

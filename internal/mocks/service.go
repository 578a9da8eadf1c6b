package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/export"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
)

type MockCirculationService struct {
	mock.Mock
}

func (m *MockCirculationService) RequestBorrow(ctx context.Context, nis string, req domain.BorrowRequest) (*domain.Student, error) {
	args := m.Called(ctx, nis, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockCirculationService) Eligibility(ctx context.Context, nis string) (*domain.BorrowEligibility, error) {
	args := m.Called(ctx, nis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowEligibility), args.Error(1)
}

func (m *MockCirculationService) RequestReturn(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, nis, loanID))
}

func (m *MockCirculationService) RequestExtension(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, nis, loanID))
}

func (m *MockCirculationService) ApproveBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) RejectBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) ApproveReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) RejectReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) ApproveExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) RejectExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, actor, loanID))
}

func (m *MockCirculationService) CalculateOverdueFines(ctx context.Context, actor *domain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockCirculationService) GetLoan(ctx context.Context, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, loanID))
}

func (m *MockCirculationService) GetStudentLoan(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	return m.loan(m.Called(ctx, nis, loanID))
}

func (m *MockCirculationService) ListLoans(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.LoanView]), args.Error(1)
}

func (m *MockCirculationService) StudentHistory(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	args := m.Called(ctx, nis, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.LoanView]), args.Error(1)
}

func (m *MockCirculationService) loan(args mock.Arguments) (*domain.LoanView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanView), args.Error(1)
}

type MockFineService struct {
	mock.Mock
}

func (m *MockFineService) RequestPayment(ctx context.Context, nis string, req domain.FinePaymentRequest) (*domain.Student, error) {
	args := m.Called(ctx, nis, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockFineService) Approve(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error) {
	return m.payment(m.Called(ctx, actor, paymentID))
}

func (m *MockFineService) Reject(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error) {
	return m.payment(m.Called(ctx, actor, paymentID))
}

func (m *MockFineService) Get(ctx context.Context, paymentID int64) (*domain.FinePayment, error) {
	return m.payment(m.Called(ctx, paymentID))
}

func (m *MockFineService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.FinePayment]), args.Error(1)
}

func (m *MockFineService) ListForStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	args := m.Called(ctx, nis, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.FinePayment]), args.Error(1)
}

func (m *MockFineService) payment(args mock.Arguments) (*domain.FinePayment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinePayment), args.Error(1)
}

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) Register(ctx context.Context, form domain.CreateStudent) (*domain.Student, error) {
	return m.student(m.Called(ctx, form))
}

func (m *MockStudentService) Save(ctx context.Context, actor domain.Actor, form domain.StudentForm) (*domain.Student, error) {
	return m.student(m.Called(ctx, actor, form))
}

func (m *MockStudentService) Approve(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return m.student(m.Called(ctx, actor, nis))
}

func (m *MockStudentService) Reject(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return m.student(m.Called(ctx, actor, nis))
}

func (m *MockStudentService) Activate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return m.student(m.Called(ctx, actor, nis))
}

func (m *MockStudentService) Deactivate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return m.student(m.Called(ctx, actor, nis))
}

func (m *MockStudentService) Get(ctx context.Context, nis string) (*domain.Student, error) {
	return m.student(m.Called(ctx, nis))
}

func (m *MockStudentService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Student]), args.Error(1)
}

func (m *MockStudentService) student(args mock.Arguments) (*domain.Student, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Status(ctx context.Context) (*domain.LibraryStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LibraryStatus), args.Error(1)
}

func (m *MockLibraryService) SetStatus(ctx context.Context, actor domain.Actor, req domain.LibraryStatusRequest) (*domain.LibraryStatus, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LibraryStatus), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockReportService) Export(ctx context.Context, dataset export.Dataset, format export.Format, q pagination.Query) (*export.File, error) {
	args := m.Called(ctx, dataset, format, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}

func (m *MockReportService) AuditLog(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.AdminLog]), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockAuthService) LoginStudent(ctx context.Context, nis, password string) (*domain.LoginResponse, error) {
	args := m.Called(ctx, nis, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

func (m *MockAuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Save(ctx context.Context, actor domain.Actor, form domain.BookForm) (*domain.Book, error) {
	return m.book(m.Called(ctx, actor, form))
}

func (m *MockCatalogService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockCatalogService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return m.book(m.Called(ctx, id))
}

func (m *MockCatalogService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Book]), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, actor domain.Actor, req domain.CategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockCatalogService) book(args mock.Arguments) (*domain.Book, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

type MockVisitorService struct {
	mock.Mock
}

func (m *MockVisitorService) CheckIn(ctx context.Context, form domain.VisitorCheckIn) (*domain.Visitor, error) {
	return m.visitor(m.Called(ctx, form))
}

func (m *MockVisitorService) CheckOut(ctx context.Context, id int64) (*domain.Visitor, error) {
	return m.visitor(m.Called(ctx, id))
}

func (m *MockVisitorService) Toggle(ctx context.Context, id int64) (*domain.Visitor, error) {
	return m.visitor(m.Called(ctx, id))
}

func (m *MockVisitorService) CountPresent(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitorService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Visitor]), args.Error(1)
}

func (m *MockVisitorService) visitor(args mock.Arguments) (*domain.Visitor, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visitor), args.Error(1)
}

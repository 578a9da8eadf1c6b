package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// MockProcedures is a mock implementation of repository.Procedures
type MockProcedures struct {
	mock.Mock
}

func (m *MockProcedures) BorrowBook(ctx context.Context, nis string, bookID int64, borrowedAt, dueAt time.Time) error {
	args := m.Called(ctx, nis, bookID, borrowedAt, dueAt)
	return args.Error(0)
}

func (m *MockProcedures) RequestReturn(ctx context.Context, loanID int64, nis string) error {
	args := m.Called(ctx, loanID, nis)
	return args.Error(0)
}

func (m *MockProcedures) ExtendBorrowPeriod(ctx context.Context, loanID int64, nis string, days int) error {
	args := m.Called(ctx, loanID, nis, days)
	return args.Error(0)
}

func (m *MockProcedures) ApproveBorrow(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) RejectBorrow(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) ApproveReturn(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) RejectReturn(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) ApproveExtension(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) RejectExtension(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcedures) CalculateOverdueFines(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProcedures) RequestFinePayment(ctx context.Context, nis string, amount decimal.Decimal, proofURL string) error {
	args := m.Called(ctx, nis, amount, proofURL)
	return args.Error(0)
}

func (m *MockProcedures) ApproveFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error {
	args := m.Called(ctx, paymentID, actor)
	return args.Error(0)
}

func (m *MockProcedures) RejectFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error {
	args := m.Called(ctx, paymentID, actor)
	return args.Error(0)
}

// MockLoanRepository is a mock implementation of repository.LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id int64) (*domain.LoanView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanView), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.LoanView]), args.Error(1)
}

func (m *MockLoanRepository) ListByStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	args := m.Called(ctx, nis, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.LoanView]), args.Error(1)
}

func (m *MockLoanRepository) CountByStatus(ctx context.Context) ([]domain.LoanStatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanStatusCount), args.Error(1)
}

// MockStudentRepository is a mock implementation of repository.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByNIS(ctx context.Context, nis string) (*domain.Student, error) {
	args := m.Called(ctx, nis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Student]), args.Error(1)
}

func (m *MockStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) UpdateStatus(ctx context.Context, nis string, status domain.StudentStatus) error {
	args := m.Called(ctx, nis, status)
	return args.Error(0)
}

func (m *MockStudentRepository) CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockFinePaymentRepository is a mock implementation of repository.FinePaymentRepository
type MockFinePaymentRepository struct {
	mock.Mock
}

func (m *MockFinePaymentRepository) GetByID(ctx context.Context, id int64) (*domain.FinePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinePayment), args.Error(1)
}

func (m *MockFinePaymentRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.FinePayment]), args.Error(1)
}

func (m *MockFinePaymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockVisitorRepository is a mock implementation of repository.VisitorRepository
type MockVisitorRepository struct {
	mock.Mock
}

func (m *MockVisitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	args := m.Called(ctx, visitor)
	return args.Error(0)
}

func (m *MockVisitorRepository) GetByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visitor), args.Error(1)
}

func (m *MockVisitorRepository) FindOpen(ctx context.Context, nis string, day time.Time) (*domain.Visitor, error) {
	args := m.Called(ctx, nis, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visitor), args.Error(1)
}

func (m *MockVisitorRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVisitorRepository) CloseBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitorRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Visitor]), args.Error(1)
}

func (m *MockVisitorRepository) CountPresent(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookRepository is a mock implementation of repository.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Book]), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockBookRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdminRepository is a mock implementation of repository.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) Log(ctx context.Context, entry *domain.AdminLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAdminRepository) ListLogs(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.AdminLog]), args.Error(1)
}

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetLibraryStatus(ctx context.Context) (*domain.LibraryStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LibraryStatus), args.Error(1)
}

func (m *MockSettingsRepository) SetLibraryStatus(ctx context.Context, status *domain.LibraryStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

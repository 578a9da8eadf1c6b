package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type stubLibrary struct {
	status *domain.LibraryStatus
	err    error
}

func (s stubLibrary) Status(context.Context) (*domain.LibraryStatus, error) {
	return s.status, s.err
}

type circulationFixture struct {
	procedures *mocks.MockProcedures
	loans      *mocks.MockLoanRepository
	students   *mocks.MockStudentRepository
	books      *mocks.MockBookRepository
	admins     *mocks.MockAdminRepository
	service    *CirculationService
	now        time.Time
}

func newCirculationFixture(t *testing.T, library LibraryStatusReader, logger *slog.Logger) *circulationFixture {
	t.Helper()
	cfg := testConfig()

	f := &circulationFixture{
		procedures: &mocks.MockProcedures{},
		loans:      &mocks.MockLoanRepository{},
		students:   &mocks.MockStudentRepository{},
		books:      &mocks.MockBookRepository{},
		admins:     &mocks.MockAdminRepository{},
		now:        time.Date(2024, 5, 1, 9, 0, 0, 0, cfg.LibraryLocation()),
	}
	if logger == nil {
		logger = discardLogger()
	}
	f.service = NewCirculationService(f.procedures, f.loans, f.students, f.books, f.admins, library, cfg, logger)
	f.service.now = func() time.Time { return f.now }
	return f
}

func activeLoan(f *circulationFixture) *domain.LoanView {
	return &domain.LoanView{
		Loan: domain.Loan{
			ID:         10,
			NIS:        "1001",
			BookID:     5,
			BorrowedAt: f.now.AddDate(0, 0, -1),
			DueAt:      f.now.AddDate(0, 0, 2),
			Status:     domain.LoanStatusBorrowed,
		},
		StudentName: "Budi",
		BookTitle:   "Laskar Pelangi",
	}
}

func TestRequestExtension_CapReachedMakesNoRemoteCall(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.ExtensionCount = 3
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil)

	_, err := f.service.RequestExtension(context.Background(), "1001", 10)

	assert.Equal(t, customError.ErrCodeExtensionLimitReached, customError.Code(err))
	f.procedures.AssertNotCalled(t, "ExtendBorrowPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestExtension_OverdueMakesNoRemoteCall(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.DueAt = f.now.Add(-time.Minute)
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil)

	_, err := f.service.RequestExtension(context.Background(), "1001", 10)

	assert.Equal(t, customError.ErrCodeLoanOverdue, customError.Code(err))
	f.procedures.AssertNotCalled(t, "ExtendBorrowPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestExtension_Success(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	requested := loan.DueAt.AddDate(0, 0, 3)
	fresh := *loan
	fresh.Status = domain.LoanStatusExtensionPending
	fresh.RequestedDueAt = &requested

	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil).Once()
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(&fresh, nil).Once()
	f.procedures.On("ExtendBorrowPeriod", mock.Anything, int64(10), "1001", 3).Return(nil)

	got, err := f.service.RequestExtension(context.Background(), "1001", 10)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusExtensionPending, got.Status)
	assert.Equal(t, &fresh, got)
	f.procedures.AssertExpectations(t)
	f.loans.AssertExpectations(t)
}

func TestRequestExtension_ProcedureMessageSurfaced(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(activeLoan(f), nil).Once()
	f.procedures.On("ExtendBorrowPeriod", mock.Anything, int64(10), "1001", 3).
		Return(customError.WrapProcedureRejected("extend_borrow_period", "Buku sedang dipesan siswa lain"))

	_, err := f.service.RequestExtension(context.Background(), "1001", 10)

	var be *customError.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Buku sedang dipesan siswa lain", be.Message)
	f.loans.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestRequestReturn_NotOwner(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(activeLoan(f), nil)

	_, err := f.service.RequestReturn(context.Background(), "2002", 10)

	assert.Equal(t, customError.ErrCodeNotOwner, customError.Code(err))
	f.procedures.AssertNotCalled(t, "RequestReturn", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestReturn_WrongStatus(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.Status = domain.LoanStatusReturnPending
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil)

	_, err := f.service.RequestReturn(context.Background(), "1001", 10)

	assert.Equal(t, customError.ErrCodeInvalidTransition, customError.Code(err))
	f.procedures.AssertNotCalled(t, "RequestReturn", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveExtension_RefetchesAndAudits(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	requested := loan.DueAt.AddDate(0, 0, 3)
	loan.Status = domain.LoanStatusExtensionPending
	loan.ExtensionCount = 1
	loan.RequestedDueAt = &requested

	fresh := *loan
	fresh.Status = domain.LoanStatusBorrowed
	fresh.DueAt = requested
	fresh.ExtensionCount = 2
	fresh.RequestedDueAt = nil

	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil).Once()
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(&fresh, nil).Once()
	f.procedures.On("ApproveExtension", mock.Anything, int64(10)).Return(nil)
	f.admins.On("Log", mock.Anything, mock.MatchedBy(func(e *domain.AdminLog) bool {
		return e.Action == "approve_extension" && e.AdminUsername == "pustakawan" && e.AdminID == 1
	})).Return(nil)

	got, err := f.service.ApproveExtension(context.Background(), testActor, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, got.ExtensionCount)
	assert.Equal(t, requested, got.DueAt)
	assert.Equal(t, domain.LoanStatusBorrowed, got.Status)
	f.admins.AssertExpectations(t)
}

func TestRejectReturn_KeepsCountAndDueDate(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.Status = domain.LoanStatusReturnPending
	loan.ExtensionCount = 2
	fresh := *loan
	fresh.Status = domain.LoanStatusBorrowed

	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil).Once()
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(&fresh, nil).Once()
	f.procedures.On("RejectReturn", mock.Anything, int64(10)).Return(nil)
	f.admins.On("Log", mock.Anything, mock.Anything).Return(nil)

	got, err := f.service.RejectReturn(context.Background(), testActor, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusBorrowed, got.Status)
	assert.Equal(t, 2, got.ExtensionCount)
	assert.Equal(t, loan.DueAt, got.DueAt)
}

func TestApproveBorrow_DriftIsLoggedAndServerWins(t *testing.T) {
	logger, logs := bufferLogger()
	f := newCirculationFixture(t, nil, logger)
	loan := activeLoan(f)
	loan.Status = domain.LoanStatusPending
	fresh := *loan
	fresh.Status = domain.LoanStatusRejected

	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil).Once()
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(&fresh, nil).Once()
	f.procedures.On("ApproveBorrow", mock.Anything, int64(10)).Return(nil)
	f.admins.On("Log", mock.Anything, mock.Anything).Return(nil)

	got, err := f.service.ApproveBorrow(context.Background(), testActor, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusRejected, got.Status)
	assert.Contains(t, logs.String(), "loan state differs from expected")
}

func TestApproveReturn_InvalidStatusMakesNoRemoteCall(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.Status = domain.LoanStatusPending
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil)

	_, err := f.service.ApproveReturn(context.Background(), testActor, 10)

	assert.Equal(t, customError.ErrCodeInvalidTransition, customError.Code(err))
	f.procedures.AssertNotCalled(t, "ApproveReturn", mock.Anything, mock.Anything)
	f.admins.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestRejectBorrow_ProcedureFailureNotAudited(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	loan := activeLoan(f)
	loan.Status = domain.LoanStatusPending
	f.loans.On("GetByID", mock.Anything, int64(10)).Return(loan, nil).Once()
	f.procedures.On("RejectBorrow", mock.Anything, int64(10)).Return(customError.WrapProcedureRejected("reject_borrow_request", ""))

	_, err := f.service.RejectBorrow(context.Background(), testActor, 10)

	assert.Equal(t, customError.ErrCodeProcedureRejected, customError.Code(err))
	f.admins.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	f.loans.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestRequestBorrow_LimitReachedMakesNoRemoteCall(t *testing.T) {
	f := newCirculationFixture(t, stubLibrary{status: &domain.LibraryStatus{Status: domain.LibraryOpen}}, nil)
	f.students.On("GetByNIS", mock.Anything, "1001").Return(&domain.Student{
		NIS: "1001", Status: domain.StudentStatusActive, ActiveLoans: 3, MaxLoans: 3,
	}, nil)

	_, err := f.service.RequestBorrow(context.Background(), "1001", domain.BorrowRequest{BookID: 5, ReturnDate: "2024-05-02"})

	assert.Equal(t, customError.ErrCodeBorrowLimitReached, customError.Code(err))
	f.books.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.procedures.AssertNotCalled(t, "BorrowBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestBorrow(t *testing.T) {
	open := &domain.LibraryStatus{Status: domain.LibraryOpen}
	student := &domain.Student{NIS: "1001", Status: domain.StudentStatusActive, ActiveLoans: 1, MaxLoans: 3}

	tests := []struct {
		name       string
		library    LibraryStatusReader
		returnDate string
		stock      int
		wantCode   string
		wantCall   bool
	}{
		{name: "success", library: stubLibrary{status: open}, returnDate: "2024-05-04", stock: 2, wantCall: true},
		{name: "status unavailable skips open check", library: stubLibrary{err: errors.New("redis down")}, returnDate: "2024-05-02", stock: 1, wantCall: true},
		{name: "return date too far", library: stubLibrary{status: open}, returnDate: "2024-05-05", stock: 2, wantCode: customError.ErrCodeInvalidReturnDate},
		{name: "return date malformed", library: stubLibrary{status: open}, returnDate: "05/02/2024", stock: 2, wantCode: customError.ErrCodeValidation},
		{
			name:       "library closed",
			library:    stubLibrary{status: &domain.LibraryStatus{Status: domain.LibraryClosed, Note: "Stock opname"}},
			returnDate: "2024-05-02",
			stock:      2,
			wantCode:   customError.ErrCodeLibraryClosed,
		},
		{name: "out of stock", library: stubLibrary{status: open}, returnDate: "2024-05-02", stock: 0, wantCode: customError.ErrCodeOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCirculationFixture(t, tt.library, nil)
			loc := f.now.Location()
			f.students.On("GetByNIS", mock.Anything, "1001").Return(student, nil)
			f.books.On("GetByID", mock.Anything, int64(5)).Return(&domain.Book{ID: 5, Stock: tt.stock}, nil)

			returnDay, _ := time.ParseInLocation("2006-01-02", tt.returnDate, loc)
			wantDue := time.Date(returnDay.Year(), returnDay.Month(), returnDay.Day(), 23, 59, 59, 999999999, loc)
			f.procedures.On("BorrowBook", mock.Anything, "1001", int64(5),
				mock.MatchedBy(func(at time.Time) bool { return at.Equal(f.now) }),
				mock.MatchedBy(func(due time.Time) bool { return due.Equal(wantDue) }),
			).Return(nil)

			got, err := f.service.RequestBorrow(context.Background(), "1001", domain.BorrowRequest{BookID: 5, ReturnDate: tt.returnDate})

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, customError.Code(err))
				f.procedures.AssertNotCalled(t, "BorrowBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, student, got)
			f.procedures.AssertExpectations(t)
			f.students.AssertNumberOfCalls(t, "GetByNIS", 2)
		})
	}
}

func TestEligibility_FullStudentCannotConfirm(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	f.students.On("GetByNIS", mock.Anything, "1001").Return(&domain.Student{
		NIS: "1001", Status: domain.StudentStatusActive, ActiveLoans: 3, MaxLoans: 3,
	}, nil)

	got, err := f.service.Eligibility(context.Background(), "1001")

	require.NoError(t, err)
	assert.False(t, got.CanBorrow)
	assert.NotEmpty(t, got.Reason)
	assert.Equal(t, "2024-05-01", got.EarliestDue)
	assert.Equal(t, "2024-05-04", got.LatestDue)
}

func TestCalculateOverdueFines(t *testing.T) {
	t.Run("admin run is audited", func(t *testing.T) {
		f := newCirculationFixture(t, nil, nil)
		f.procedures.On("CalculateOverdueFines", mock.Anything).Return(nil)
		f.admins.On("Log", mock.Anything, mock.MatchedBy(func(e *domain.AdminLog) bool {
			return e.Action == "calculate_overdue_fines"
		})).Return(nil)

		require.NoError(t, f.service.CalculateOverdueFines(context.Background(), &testActor))
		f.admins.AssertExpectations(t)
	})

	t.Run("scheduled run is not audited", func(t *testing.T) {
		f := newCirculationFixture(t, nil, nil)
		f.procedures.On("CalculateOverdueFines", mock.Anything).Return(nil)

		require.NoError(t, f.service.CalculateOverdueFines(context.Background(), nil))
		f.admins.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	})

	t.Run("audit failure does not fail the run", func(t *testing.T) {
		f := newCirculationFixture(t, nil, nil)
		f.procedures.On("CalculateOverdueFines", mock.Anything).Return(nil)
		f.admins.On("Log", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		assert.NoError(t, f.service.CalculateOverdueFines(context.Background(), &testActor))
	})
}

func TestListLoans_NormalizesQuery(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	want := pagination.Query{Filters: map[string]string{"status": "dipinjam"}, Page: 1, PageSize: 10}
	f.loans.On("List", mock.Anything, want).Return(pagination.NewPage([]domain.LoanView{}, 0, want), nil)

	_, err := f.service.ListLoans(context.Background(), pagination.Query{Filters: map[string]string{"status": "dipinjam"}, Page: -3})

	require.NoError(t, err)
	f.loans.AssertExpectations(t)
}

func TestStudentHistory_ScopedToStudent(t *testing.T) {
	f := newCirculationFixture(t, nil, nil)
	q := pagination.Query{Page: 2, PageSize: 5}
	f.loans.On("ListByStudent", mock.Anything, "1001", q).Return(pagination.NewPage([]domain.LoanView{}, 6, q), nil)

	page, err := f.service.StudentHistory(context.Background(), "1001", q)

	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages())
}

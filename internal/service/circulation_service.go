package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/circulation"
	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/utils"
)

// LibraryStatusReader tells the borrow check whether the library is open.
type LibraryStatusReader interface {
	Status(ctx context.Context) (*domain.LibraryStatus, error)
}

// CirculationService drives loans through their lifecycle. Every state
// change is a stored procedure call; the service only refuses requests
// that cannot succeed and re-reads the loan afterwards.
type CirculationService struct {
	procedures repository.Procedures
	loans      repository.LoanRepository
	students   repository.StudentRepository
	books      repository.BookRepository
	library    LibraryStatusReader
	audit      auditor
	policy     circulation.Policy
	pageSize   int
	maxPage    int
	logger     *slog.Logger
	now        func() time.Time
}

func NewCirculationService(
	procedures repository.Procedures,
	loans repository.LoanRepository,
	students repository.StudentRepository,
	books repository.BookRepository,
	admins repository.AdminRepository,
	library LibraryStatusReader,
	cfg *config.Config,
	logger *slog.Logger,
) *CirculationService {
	return &CirculationService{
		procedures: procedures,
		loans:      loans,
		students:   students,
		books:      books,
		library:    library,
		audit:      auditor{admins: admins, logger: logger},
		policy:     PolicyFromConfig(cfg),
		pageSize:   cfg.Business.DefaultPageSize,
		maxPage:    cfg.Business.MaxPageSize,
		logger:     logger,
		now:        time.Now,
	}
}

// PolicyFromConfig builds the borrowing limits from business settings.
func PolicyFromConfig(cfg *config.Config) circulation.Policy {
	return circulation.Policy{
		MaxBorrowDays:   cfg.Business.MaxBorrowDays,
		ExtensionDays:   cfg.Business.ExtensionDays,
		MaxExtensions:   cfg.Business.MaxExtensions,
		DefaultMaxLoans: cfg.Business.DefaultMaxLoans,
		Location:        cfg.LibraryLocation(),
	}
}

// RequestBorrow asks for a new loan of req.BookID until req.ReturnDate and
// returns the student with refreshed counters.
func (s *CirculationService) RequestBorrow(ctx context.Context, nis string, req domain.BorrowRequest) (*domain.Student, error) {
	now := s.now()

	returnDay, err := utils.ParseDate(req.ReturnDate, s.policy.Location)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}

	student, err := s.students.GetByNIS(ctx, nis)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckBorrow(*student, returnDay, now, s.libraryStatus(ctx)); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if book.Stock <= 0 {
		return nil, customError.WrapOutOfStock(book.ID)
	}

	if err := s.procedures.BorrowBook(ctx, nis, req.BookID, now, s.policy.DueAt(returnDay)); err != nil {
		return nil, err
	}

	s.logger.Info("borrow requested", "nis", nis, "book_id", req.BookID, "return_date", req.ReturnDate)

	return s.students.GetByNIS(ctx, nis)
}

// Eligibility reports whether the borrow dialog may be confirmed.
func (s *CirculationService) Eligibility(ctx context.Context, nis string) (*domain.BorrowEligibility, error) {
	student, err := s.students.GetByNIS(ctx, nis)
	if err != nil {
		return nil, err
	}

	result := s.policy.Eligibility(*student, s.now(), s.libraryStatus(ctx))
	return &result, nil
}

// RequestReturn asks for an active loan to be checked back in.
func (s *CirculationService) RequestReturn(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	loan, err := s.ownedLoan(ctx, nis, loanID)
	if err != nil {
		return nil, err
	}

	expected, err := s.policy.Transition(loan.Loan, circulation.ActionRequestReturn, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.procedures.RequestReturn(ctx, loanID, nis); err != nil {
		return nil, err
	}

	return s.refetch(ctx, loanID, circulation.ActionRequestReturn, expected)
}

// RequestExtension asks for the due date to move by the extension period.
func (s *CirculationService) RequestExtension(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	loan, err := s.ownedLoan(ctx, nis, loanID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.policy.CheckExtension(loan.Loan, now); err != nil {
		return nil, err
	}

	expected, err := s.policy.Transition(loan.Loan, circulation.ActionRequestExtension, now)
	if err != nil {
		return nil, err
	}

	if err := s.procedures.ExtendBorrowPeriod(ctx, loanID, nis, s.policy.ExtensionDays); err != nil {
		return nil, err
	}

	return s.refetch(ctx, loanID, circulation.ActionRequestExtension, expected)
}

func (s *CirculationService) ApproveBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionApproveBorrow, s.procedures.ApproveBorrow)
}

func (s *CirculationService) RejectBorrow(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionRejectBorrow, s.procedures.RejectBorrow)
}

func (s *CirculationService) ApproveReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionApproveReturn, s.procedures.ApproveReturn)
}

func (s *CirculationService) RejectReturn(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionRejectReturn, s.procedures.RejectReturn)
}

func (s *CirculationService) ApproveExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionApproveExtension, s.procedures.ApproveExtension)
}

func (s *CirculationService) RejectExtension(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error) {
	return s.adminTransition(ctx, actor, loanID, circulation.ActionRejectExtension, s.procedures.RejectExtension)
}

// CalculateOverdueFines runs the fine batch. actor is nil for scheduled runs.
func (s *CirculationService) CalculateOverdueFines(ctx context.Context, actor *domain.Actor) error {
	start := s.now()
	if err := s.procedures.CalculateOverdueFines(ctx); err != nil {
		return err
	}

	s.logger.Info("overdue fines calculated", "duration", s.now().Sub(start))
	if actor != nil {
		s.audit.record(ctx, *actor, "calculate_overdue_fines", "hitung denda terlambat")
	}
	return nil
}

func (s *CirculationService) GetLoan(ctx context.Context, loanID int64) (*domain.LoanView, error) {
	return s.loans.GetByID(ctx, loanID)
}

// GetStudentLoan returns the loan only when it belongs to nis.
func (s *CirculationService) GetStudentLoan(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	return s.ownedLoan(ctx, nis, loanID)
}

func (s *CirculationService) ListLoans(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	return s.loans.List(ctx, q.Normalize(s.pageSize, s.maxPage))
}

func (s *CirculationService) StudentHistory(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	return s.loans.ListByStudent(ctx, nis, q.Normalize(s.pageSize, s.maxPage))
}

func (s *CirculationService) adminTransition(
	ctx context.Context,
	actor domain.Actor,
	loanID int64,
	action circulation.Action,
	call func(ctx context.Context, loanID int64) error,
) (*domain.LoanView, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	expected, err := s.policy.Transition(loan.Loan, action, s.now())
	if err != nil {
		return nil, err
	}

	if err := call(ctx, loanID); err != nil {
		return nil, err
	}

	fresh, err := s.refetch(ctx, loanID, action, expected)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, string(action),
		fmt.Sprintf("sirkulasi %d: %s meminjam %q (%s -> %s)", loanID, loan.NIS, loan.BookTitle, loan.Status, fresh.Status))
	return fresh, nil
}

// refetch reads the loan back after a procedure succeeded. The stored row
// wins; a mismatch with the expected state means someone else acted on
// the loan in between.
func (s *CirculationService) refetch(ctx context.Context, loanID int64, action circulation.Action, expected domain.Loan) (*domain.LoanView, error) {
	fresh, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if fresh.Status != expected.Status || fresh.ExtensionCount != expected.ExtensionCount {
		s.logger.Warn("loan state differs from expected after procedure",
			"loan_id", loanID,
			"action", action,
			"expected_status", expected.Status,
			"actual_status", fresh.Status,
			"expected_extensions", expected.ExtensionCount,
			"actual_extensions", fresh.ExtensionCount,
		)
	}

	return fresh, nil
}

func (s *CirculationService) ownedLoan(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.NIS != nis {
		return nil, customError.WrapNotOwner(loanID)
	}
	return loan, nil
}

// libraryStatus is nil when the switch cannot be read; the borrow check
// then skips it.
func (s *CirculationService) libraryStatus(ctx context.Context) *domain.LibraryStatus {
	if s.library == nil {
		return nil
	}
	status, err := s.library.Status(ctx)
	if err != nil {
		s.logger.Warn("library status unavailable, skipping open check", "error", err)
		return nil
	}
	return status
}

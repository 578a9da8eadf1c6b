package circulation

import (
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/utils"
)

// Policy holds the borrowing limits. Dates are judged in Location.
type Policy struct {
	MaxBorrowDays   int
	ExtensionDays   int
	MaxExtensions   int
	DefaultMaxLoans int
	Location        *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		MaxBorrowDays:   3,
		ExtensionDays:   3,
		MaxExtensions:   3,
		DefaultMaxLoans: 3,
		Location:        time.UTC,
	}
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// ReturnDateWindow returns the first and last day a new loan may be due,
// both inclusive: today through today+MaxBorrowDays.
func (p Policy) ReturnDateWindow(now time.Time) (earliest, latest time.Time) {
	today := utils.StartOfDay(now.In(p.loc()))
	return today, utils.AddDays(today, p.MaxBorrowDays)
}

// DueAt turns the chosen return day into the loan's due timestamp, the
// last moment of that day.
func (p Policy) DueAt(returnDay time.Time) time.Time {
	return utils.EndOfDay(returnDay.In(p.loc()))
}

// MaxLoansFor falls back to the default when the student row has no limit.
func (p Policy) MaxLoansFor(student domain.Student) int {
	if student.MaxLoans > 0 {
		return student.MaxLoans
	}
	return p.DefaultMaxLoans
}

// CheckBorrow validates a borrow request before it reaches borrow_book.
// library may be nil when the open/closed state could not be read.
func (p Policy) CheckBorrow(student domain.Student, returnDay, now time.Time, library *domain.LibraryStatus) error {
	if student.Status != domain.StudentStatusActive {
		return customError.WrapAccountInactive(string(student.Status))
	}

	if max := p.MaxLoansFor(student); student.ActiveLoans >= max {
		return customError.WrapBorrowLimitReached(student.ActiveLoans, max)
	}

	if days := utils.CalendarDaysBetween(now.In(p.loc()), returnDay.In(p.loc())); days < 0 || days > p.MaxBorrowDays {
		earliest, latest := p.ReturnDateWindow(now)
		return customError.WrapInvalidReturnDate(utils.DateString(earliest), utils.DateString(latest))
	}

	if library != nil && !library.Open() {
		return customError.WrapLibraryClosed(library.Note)
	}

	return nil
}

// Eligibility is CheckBorrow without a date, for enabling the borrow dialog.
func (p Policy) Eligibility(student domain.Student, now time.Time, library *domain.LibraryStatus) domain.BorrowEligibility {
	earliest, latest := p.ReturnDateWindow(now)
	result := domain.BorrowEligibility{
		CanBorrow:   true,
		ActiveLoans: student.ActiveLoans,
		MaxLoans:    p.MaxLoansFor(student),
		EarliestDue: utils.DateString(earliest),
		LatestDue:   utils.DateString(latest),
	}

	if err := p.CheckBorrow(student, earliest, now, library); err != nil {
		result.CanBorrow = false
		result.Reason = messageOf(err)
	}
	return result
}

// CheckExtension refuses an extension when the loan is not active, the
// extension cap is reached, or the loan is already overdue.
func (p Policy) CheckExtension(loan domain.Loan, now time.Time) error {
	if !Allowed(loan.Status, ActionRequestExtension) {
		return customError.WrapInvalidTransition(string(ActionRequestExtension), string(loan.Status))
	}

	if loan.ExtensionCount >= p.MaxExtensions {
		return customError.WrapExtensionLimitReached(p.MaxExtensions)
	}

	if utils.IsDateOverdue(loan.DueAt, now) {
		return customError.WrapLoanOverdue(loan.ID)
	}

	return nil
}

// ExtendedDueDate is the due date an approved extension would set.
func (p Policy) ExtendedDueDate(loan domain.Loan) time.Time {
	return utils.AddDays(loan.DueAt, p.ExtensionDays)
}

func messageOf(err error) string {
	var be *customError.BusinessError
	if customError.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

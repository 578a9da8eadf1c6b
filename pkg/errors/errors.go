package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidTransition     = errors.New("status does not allow this action")
	ErrBorrowLimitReached    = errors.New("active loan limit reached")
	ErrInvalidReturnDate     = errors.New("return date outside allowed window")
	ErrLibraryClosed         = errors.New("library is closed")
	ErrOutOfStock            = errors.New("book is out of stock")
	ErrExtensionLimitReached = errors.New("extension limit reached")
	ErrLoanOverdue           = errors.New("loan is already overdue")
	ErrNotOwner              = errors.New("loan belongs to another student")
	ErrInvalidPaymentAmount  = errors.New("invalid payment amount")
	ErrPaymentExceedsFine    = errors.New("payment amount exceeds outstanding fine")
	ErrProcedureRejected     = errors.New("procedure rejected the request")
	ErrAccountInactive       = errors.New("account is not active")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidFilter         = errors.New("invalid filter")
	ErrPageOutOfRange        = errors.New("page out of range")
	ErrAlreadyExists         = errors.New("record already exists")
	ErrValidation            = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeInvalidTransition     = "INVALID_TRANSITION"
	ErrCodeBorrowLimitReached    = "BORROW_LIMIT_REACHED"
	ErrCodeInvalidReturnDate     = "INVALID_RETURN_DATE"
	ErrCodeLibraryClosed         = "LIBRARY_CLOSED"
	ErrCodeOutOfStock            = "OUT_OF_STOCK"
	ErrCodeExtensionLimitReached = "EXTENSION_LIMIT_REACHED"
	ErrCodeLoanOverdue           = "LOAN_OVERDUE"
	ErrCodeNotOwner              = "NOT_OWNER"
	ErrCodeInvalidPaymentAmount  = "INVALID_PAYMENT_AMOUNT"
	ErrCodePaymentExceedsFine    = "PAYMENT_EXCEEDS_FINE"
	ErrCodeProcedureRejected     = "PROCEDURE_REJECTED"
	ErrCodeProcedureFailed       = "PROCEDURE_FAILED"
	ErrCodeAccountInactive       = "ACCOUNT_INACTIVE"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeInvalidFilter         = "INVALID_FILTER"
	ErrCodePageOutOfRange        = "PAGE_OUT_OF_RANGE"
	ErrCodeAlreadyExists         = "ALREADY_EXISTS"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Code returns the business code carried by err, or "" when err is not a BusinessError.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Is forwards to the standard library so callers only import one errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap common errors with business context
func WrapNotFound(entity string, id any) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s %v not found", entity, id),
		ErrNotFound,
	)
}

func WrapInvalidTransition(action, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("cannot %s while status is %s", action, status),
		ErrInvalidTransition,
	)
}

func WrapBorrowLimitReached(active, max int) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowLimitReached,
		fmt.Sprintf("Batas maksimal peminjaman tercapai (%d/%d buku)", active, max),
		ErrBorrowLimitReached,
	)
}

func WrapInvalidReturnDate(earliest, latest string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidReturnDate,
		fmt.Sprintf("Tanggal kembali harus antara %s dan %s", earliest, latest),
		ErrInvalidReturnDate,
	)
}

func WrapLibraryClosed(note string) *BusinessError {
	msg := "Perpustakaan sedang tutup"
	if note != "" {
		msg = fmt.Sprintf("%s: %s", msg, note)
	}
	return NewBusinessError(ErrCodeLibraryClosed, msg, ErrLibraryClosed)
}

func WrapOutOfStock(bookID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeOutOfStock,
		fmt.Sprintf("Book %d is out of stock", bookID),
		ErrOutOfStock,
	)
}

func WrapExtensionLimitReached(max int) *BusinessError {
	return NewBusinessError(
		ErrCodeExtensionLimitReached,
		fmt.Sprintf("Perpanjangan sudah mencapai batas maksimal (%d kali)", max),
		ErrExtensionLimitReached,
	)
}

func WrapLoanOverdue(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanOverdue,
		fmt.Sprintf("Loan %d is past its due date and cannot be extended", loanID),
		ErrLoanOverdue,
	)
}

func WrapNotOwner(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeNotOwner,
		fmt.Sprintf("Loan %d does not belong to this student", loanID),
		ErrNotOwner,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapPaymentExceedsFine(amount, outstanding string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentExceedsFine,
		fmt.Sprintf("Payment amount %s exceeds outstanding fine %s", amount, outstanding),
		ErrPaymentExceedsFine,
	)
}

// WrapProcedureRejected carries the message a stored procedure returned with success=false.
func WrapProcedureRejected(procedure, message string) *BusinessError {
	if message == "" {
		message = fmt.Sprintf("%s was rejected", procedure)
	}
	return NewBusinessError(ErrCodeProcedureRejected, message, ErrProcedureRejected)
}

// WrapProcedureFailed carries an exception raised inside a stored procedure.
func WrapProcedureFailed(message string, err error) *BusinessError {
	return NewBusinessError(ErrCodeProcedureFailed, message, err)
}

func WrapAccountInactive(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeAccountInactive,
		fmt.Sprintf("Account status is %s", status),
		ErrAccountInactive,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(ErrCodeInvalidCredentials, "invalid username or password", ErrInvalidCredentials)
}

func WrapUnauthorized(message string) *BusinessError {
	return NewBusinessError(ErrCodeUnauthorized, message, ErrUnauthorized)
}

func WrapInvalidFilter(key string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidFilter,
		fmt.Sprintf("unknown filter %q", key),
		ErrInvalidFilter,
	)
}

func WrapPageOutOfRange(page, totalPages int) *BusinessError {
	return NewBusinessError(
		ErrCodePageOutOfRange,
		fmt.Sprintf("page %d is beyond the last page %d", page, totalPages),
		ErrPageOutOfRange,
	)
}

func WrapAlreadyExists(entity string, id any) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyExists,
		fmt.Sprintf("%s %v already exists", entity, id),
		ErrAlreadyExists,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(ErrCodeValidation, "request validation failed", errors.Join(ErrValidation, err))
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

const (
	procBorrowBook            = "borrow_book"
	procRequestReturn         = "request_return_book"
	procExtendBorrowPeriod    = "extend_borrow_period"
	procApproveBorrow         = "approve_borrow_request"
	procRejectBorrow          = "reject_borrow_request"
	procApproveReturn         = "approve_return_request_admin"
	procRejectReturn          = "reject_return_request_admin"
	procApproveExtension      = "approve_extension_request_admin"
	procRejectExtension       = "reject_extension_request_admin"
	procCalculateOverdueFines = "calculate_and_apply_overdue_fines"
	procRequestFinePayment    = "request_fine_payment"
	procApproveFinePayment    = "approve_fine_payment"
	procRejectFinePayment     = "reject_fine_payment"
)

type procedures struct {
	db *sqlx.DB
}

func NewProcedures(db *sqlx.DB) Procedures {
	return &procedures{db: db}
}

func (p *procedures) BorrowBook(ctx context.Context, nis string, bookID int64, borrowedAt, dueAt time.Time) error {
	return p.callBool(ctx, procBorrowBook, nis, bookID, borrowedAt, dueAt)
}

func (p *procedures) RequestReturn(ctx context.Context, loanID int64, nis string) error {
	return p.callBool(ctx, procRequestReturn, loanID, nis)
}

func (p *procedures) ExtendBorrowPeriod(ctx context.Context, loanID int64, nis string, days int) error {
	return p.callResult(ctx, procExtendBorrowPeriod, loanID, nis, days)
}

func (p *procedures) ApproveBorrow(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procApproveBorrow, loanID)
}

func (p *procedures) RejectBorrow(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procRejectBorrow, loanID)
}

func (p *procedures) ApproveReturn(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procApproveReturn, loanID)
}

func (p *procedures) RejectReturn(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procRejectReturn, loanID)
}

func (p *procedures) ApproveExtension(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procApproveExtension, loanID)
}

func (p *procedures) RejectExtension(ctx context.Context, loanID int64) error {
	return p.callBool(ctx, procRejectExtension, loanID)
}

func (p *procedures) CalculateOverdueFines(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, callStatement(procCalculateOverdueFines, 0)); err != nil {
		return classifyProcedureError(procCalculateOverdueFines, err)
	}
	return nil
}

func (p *procedures) RequestFinePayment(ctx context.Context, nis string, amount decimal.Decimal, proofURL string) error {
	var proof sql.NullString
	if proofURL != "" {
		proof = sql.NullString{String: proofURL, Valid: true}
	}
	return p.callResult(ctx, procRequestFinePayment, nis, amount, proof)
}

func (p *procedures) ApproveFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error {
	return p.callBool(ctx, procApproveFinePayment, paymentID, actor.AdminID, actor.Username)
}

func (p *procedures) RejectFinePayment(ctx context.Context, paymentID int64, actor domain.Actor) error {
	return p.callBool(ctx, procRejectFinePayment, paymentID, actor.AdminID, actor.Username)
}

// callBool runs a procedure returning boolean. false is a rejection
// without a message.
func (p *procedures) callBool(ctx context.Context, name string, args ...any) error {
	var ok sql.NullBool
	if err := p.db.QueryRowxContext(ctx, callStatement(name, len(args)), args...).Scan(&ok); err != nil {
		return classifyProcedureError(name, err)
	}
	if !ok.Valid || !ok.Bool {
		return customError.WrapProcedureRejected(name, "")
	}
	return nil
}

// callResult runs a procedure returning a json {success, message} object.
func (p *procedures) callResult(ctx context.Context, name string, args ...any) error {
	var raw []byte
	if err := p.db.QueryRowxContext(ctx, callStatement(name, len(args)), args...).Scan(&raw); err != nil {
		return classifyProcedureError(name, err)
	}
	return decodeProcedureResult(name, raw)
}

func decodeProcedureResult(name string, raw []byte) error {
	var result domain.ProcedureResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return customError.WrapDatabaseError(fmt.Errorf("decoding %s result: %w", name, err))
	}
	if !result.Success {
		return customError.WrapProcedureRejected(name, result.Message)
	}
	return nil
}

func callStatement(name string, argc int) string {
	placeholders := make([]string, argc)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s(%s)", name, strings.Join(placeholders, ", "))
}

// classifyProcedureError keeps the server's message verbatim. Errors
// raised by the procedure body or its constraints are user-facing
// rejections; anything else is a database failure.
func classifyProcedureError(name string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return customError.NewBusinessError(customError.ErrCodeDatabaseError, err.Error(), err)
	}

	code := string(pqErr.Code)
	switch {
	case code == pgerrcode.UndefinedFunction:
		return customError.NewBusinessError(customError.ErrCodeDatabaseError,
			fmt.Sprintf("procedure %s is not installed", name), err)
	case pgerrcode.IsPLpgSQLError(code),
		pgerrcode.IsIntegrityConstraintViolation(code),
		pgerrcode.IsDataException(code),
		code == pgerrcode.InsufficientPrivilege:
		return customError.WrapProcedureFailed(pqErr.Message, err)
	default:
		return customError.NewBusinessError(customError.ErrCodeDatabaseError, pqErr.Message, err)
	}
}

// Package circulation is the loan lifecycle: which actions each status
// allows, the state a successful action should lead to, and the checks
// that must pass before a borrow or extension request is sent to the
// database procedures.
//
// Nothing here writes state. The procedures own every transition; the
// service uses these functions to refuse hopeless requests early and to
// notice when the re-fetched row disagrees with what was expected.
package circulation

import (
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// Action is a trigger in the circulation state machine.
type Action string

const (
	ActionApproveBorrow    Action = "approve_borrow"
	ActionRejectBorrow     Action = "reject_borrow"
	ActionRequestReturn    Action = "request_return"
	ActionRequestExtension Action = "request_extension"
	ActionApproveReturn    Action = "approve_return"
	ActionRejectReturn     Action = "reject_return"
	ActionApproveExtension Action = "approve_extension"
	ActionRejectExtension  Action = "reject_extension"
)

var transitions = map[domain.LoanStatus]map[Action]domain.LoanStatus{
	domain.LoanStatusPending: {
		ActionApproveBorrow: domain.LoanStatusBorrowed,
		ActionRejectBorrow:  domain.LoanStatusRejected,
	},
	domain.LoanStatusBorrowed: {
		ActionRequestReturn:    domain.LoanStatusReturnPending,
		ActionRequestExtension: domain.LoanStatusExtensionPending,
	},
	domain.LoanStatusReturnPending: {
		ActionApproveReturn: domain.LoanStatusReturned,
		ActionRejectReturn:  domain.LoanStatusBorrowed,
	},
	domain.LoanStatusExtensionPending: {
		ActionApproveExtension: domain.LoanStatusBorrowed,
		ActionRejectExtension:  domain.LoanStatusBorrowed,
	},
}

// Allowed reports whether action can be taken on a loan in status from.
func Allowed(from domain.LoanStatus, action Action) bool {
	_, ok := transitions[from][action]
	return ok
}

// Next returns the status action leads to from status from.
func Next(from domain.LoanStatus, action Action) (domain.LoanStatus, error) {
	to, ok := transitions[from][action]
	if !ok {
		return "", customError.WrapInvalidTransition(string(action), string(from))
	}
	return to, nil
}

// Transition returns the loan as it should look once action has succeeded.
// Status is the only field changed by most actions; the extension and
// return actions also move their dates and counters.
func (p Policy) Transition(loan domain.Loan, action Action, now time.Time) (domain.Loan, error) {
	to, err := Next(loan.Status, action)
	if err != nil {
		return loan, err
	}

	next := loan
	next.Status = to

	switch action {
	case ActionRequestExtension:
		requested := p.ExtendedDueDate(loan)
		next.RequestedDueAt = &requested
	case ActionApproveExtension:
		if loan.RequestedDueAt != nil {
			next.DueAt = *loan.RequestedDueAt
		} else {
			next.DueAt = p.ExtendedDueDate(loan)
		}
		next.ExtensionCount = loan.ExtensionCount + 1
		next.RequestedDueAt = nil
	case ActionRejectExtension:
		next.RequestedDueAt = nil
	case ActionApproveReturn:
		returned := now
		next.ReturnedAt = &returned
	}

	return next, nil
}

package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

func TestCallStatement(t *testing.T) {
	assert.Equal(t, "SELECT borrow_book($1, $2, $3, $4)", callStatement(procBorrowBook, 4))
	assert.Equal(t, "SELECT approve_borrow_request($1)", callStatement(procApproveBorrow, 1))
	assert.Equal(t, "SELECT calculate_and_apply_overdue_fines()", callStatement(procCalculateOverdueFines, 0))
}

func TestClassifyProcedureError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "raise exception keeps message",
			err:         &pq.Error{Code: "P0001", Message: "Stok buku habis"},
			wantCode:    customError.ErrCodeProcedureFailed,
			wantMessage: "Stok buku habis",
		},
		{
			name:        "unique violation",
			err:         &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantCode:    customError.ErrCodeProcedureFailed,
			wantMessage: "duplicate key value violates unique constraint",
		},
		{
			name:        "invalid input",
			err:         &pq.Error{Code: "22P02", Message: "invalid input syntax for type integer"},
			wantCode:    customError.ErrCodeProcedureFailed,
			wantMessage: "invalid input syntax for type integer",
		},
		{
			name:        "missing procedure",
			err:         &pq.Error{Code: "42883", Message: "function borrow_book does not exist"},
			wantCode:    customError.ErrCodeDatabaseError,
			wantMessage: "procedure borrow_book is not installed",
		},
		{
			name:        "connection failure",
			err:         &pq.Error{Code: "08006", Message: "connection failure"},
			wantCode:    customError.ErrCodeDatabaseError,
			wantMessage: "connection failure",
		},
		{
			name:        "transport error verbatim",
			err:         errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode:    customError.ErrCodeDatabaseError,
			wantMessage: "dial tcp 127.0.0.1:5432: connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyProcedureError(procBorrowBook, tt.err)

			var be *customError.BusinessError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.wantCode, be.Code)
			assert.Equal(t, tt.wantMessage, be.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeProcedureResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, decodeProcedureResult(procExtendBorrowPeriod, []byte(`{"success": true, "message": "ok"}`)))
	})

	t.Run("business failure keeps message", func(t *testing.T) {
		err := decodeProcedureResult(procExtendBorrowPeriod, []byte(`{"success": false, "message": "Buku sudah diperpanjang 3 kali"}`))

		var be *customError.BusinessError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, customError.ErrCodeProcedureRejected, be.Code)
		assert.Equal(t, "Buku sudah diperpanjang 3 kali", be.Message)
	})

	t.Run("failure without message", func(t *testing.T) {
		err := decodeProcedureResult(procRequestFinePayment, []byte(`{"success": false}`))
		assert.Equal(t, customError.ErrCodeProcedureRejected, customError.Code(err))
		assert.Contains(t, err.Error(), "request_fine_payment")
	})

	t.Run("malformed result", func(t *testing.T) {
		err := decodeProcedureResult(procRequestFinePayment, []byte(`true`))
		assert.Equal(t, customError.ErrCodeDatabaseError, customError.Code(err))
	})
}

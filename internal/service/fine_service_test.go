package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type fineFixture struct {
	procedures *mocks.MockProcedures
	payments   *mocks.MockFinePaymentRepository
	students   *mocks.MockStudentRepository
	admins     *mocks.MockAdminRepository
	service    *FineService
}

func newFineFixture() *fineFixture {
	f := &fineFixture{
		procedures: &mocks.MockProcedures{},
		payments:   &mocks.MockFinePaymentRepository{},
		students:   &mocks.MockStudentRepository{},
		admins:     &mocks.MockAdminRepository{},
	}
	f.service = NewFineService(f.procedures, f.payments, f.students, f.admins, testConfig(), discardLogger())
	return f
}

func TestRequestPayment_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "negative", amount: decimal.NewFromInt(-500)},
		{name: "fractional rupiah", amount: decimal.RequireFromString("1000.50")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFineFixture()

			_, err := f.service.RequestPayment(context.Background(), "1001", domain.FinePaymentRequest{Amount: tt.amount})

			assert.Equal(t, customError.ErrCodeInvalidPaymentAmount, customError.Code(err))
			f.students.AssertNotCalled(t, "GetByNIS", mock.Anything, mock.Anything)
			f.procedures.AssertNotCalled(t, "RequestFinePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRequestPayment_ExceedsOutstandingFine(t *testing.T) {
	f := newFineFixture()
	f.students.On("GetByNIS", mock.Anything, "1001").Return(&domain.Student{
		NIS: "1001", TotalFine: decimal.NewFromInt(5000),
	}, nil)

	_, err := f.service.RequestPayment(context.Background(), "1001", domain.FinePaymentRequest{Amount: decimal.NewFromInt(6000)})

	assert.Equal(t, customError.ErrCodePaymentExceedsFine, customError.Code(err))
	f.procedures.AssertNotCalled(t, "RequestFinePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPayment_Success(t *testing.T) {
	f := newFineFixture()
	amount := decimal.NewFromInt(5000)
	before := &domain.Student{NIS: "1001", TotalFine: decimal.NewFromInt(5000)}
	after := &domain.Student{NIS: "1001", TotalFine: decimal.NewFromInt(5000), BorrowingStatus: "menunggu_verifikasi"}

	f.students.On("GetByNIS", mock.Anything, "1001").Return(before, nil).Once()
	f.students.On("GetByNIS", mock.Anything, "1001").Return(after, nil).Once()
	f.procedures.On("RequestFinePayment", mock.Anything, "1001",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) }),
		"https://example.com/bukti.jpg",
	).Return(nil)

	got, err := f.service.RequestPayment(context.Background(), "1001", domain.FinePaymentRequest{
		Amount:   amount,
		ProofURL: "https://example.com/bukti.jpg",
	})

	require.NoError(t, err)
	assert.Same(t, after, got)
	f.procedures.AssertExpectations(t)
}

func TestRequestPayment_ProcedureRejectionSurfaced(t *testing.T) {
	f := newFineFixture()
	f.students.On("GetByNIS", mock.Anything, "1001").Return(&domain.Student{NIS: "1001", TotalFine: decimal.NewFromInt(5000)}, nil)
	f.procedures.On("RequestFinePayment", mock.Anything, "1001", mock.Anything, "").
		Return(customError.WrapProcedureRejected("request_fine_payment", "Masih ada pembayaran yang menunggu verifikasi"))

	_, err := f.service.RequestPayment(context.Background(), "1001", domain.FinePaymentRequest{Amount: decimal.NewFromInt(1000)})

	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeProcedureRejected, customError.Code(err))
	assert.Contains(t, err.Error(), "Masih ada pembayaran yang menunggu verifikasi")
	f.students.AssertNumberOfCalls(t, "GetByNIS", 1)
}

func TestApprovePayment(t *testing.T) {
	t.Run("pending payment is approved and audited", func(t *testing.T) {
		f := newFineFixture()
		pending := &domain.FinePayment{ID: 4, NIS: "1001", Amount: decimal.NewFromInt(3000), Status: domain.FinePaymentPending}
		approved := *pending
		approved.Status = domain.FinePaymentApproved

		f.payments.On("GetByID", mock.Anything, int64(4)).Return(pending, nil).Once()
		f.payments.On("GetByID", mock.Anything, int64(4)).Return(&approved, nil).Once()
		f.procedures.On("ApproveFinePayment", mock.Anything, int64(4), testActor).Return(nil)
		f.admins.On("Log", mock.Anything, mock.MatchedBy(func(e *domain.AdminLog) bool {
			return e.Action == "approve_fine_payment" && e.Details == "pembayaran 4: 1001 Rp3000"
		})).Return(nil)

		got, err := f.service.Approve(context.Background(), testActor, 4)

		require.NoError(t, err)
		assert.Equal(t, domain.FinePaymentApproved, got.Status)
		f.admins.AssertExpectations(t)
	})

	t.Run("already processed payment is refused", func(t *testing.T) {
		f := newFineFixture()
		f.payments.On("GetByID", mock.Anything, int64(4)).Return(&domain.FinePayment{ID: 4, Status: domain.FinePaymentRejected}, nil)

		_, err := f.service.Approve(context.Background(), testActor, 4)

		assert.Equal(t, customError.ErrCodeInvalidTransition, customError.Code(err))
		f.procedures.AssertNotCalled(t, "ApproveFinePayment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRejectPayment_ProcedureFailure(t *testing.T) {
	f := newFineFixture()
	f.payments.On("GetByID", mock.Anything, int64(4)).Return(&domain.FinePayment{ID: 4, Status: domain.FinePaymentPending}, nil)
	f.procedures.On("RejectFinePayment", mock.Anything, int64(4), testActor).
		Return(customError.WrapProcedureFailed("payment 4 not found", nil))

	_, err := f.service.Reject(context.Background(), testActor, 4)

	assert.Equal(t, customError.ErrCodeProcedureFailed, customError.Code(err))
	f.admins.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestListForStudent_PinsNISAndKeepsPage(t *testing.T) {
	f := newFineFixture()
	caller := map[string]string{"status": "pending", "nis": "9999"}
	want := pagination.Query{Filters: map[string]string{"status": "pending", "nis": "1001"}, Page: 2, PageSize: 10}
	f.payments.On("List", mock.Anything, want).Return(pagination.NewPage([]domain.FinePayment{}, 12, want), nil)

	_, err := f.service.ListForStudent(context.Background(), "1001", pagination.Query{Filters: caller, Page: 2})

	require.NoError(t, err)
	assert.Equal(t, "9999", caller["nis"])
	f.payments.AssertExpectations(t)
}

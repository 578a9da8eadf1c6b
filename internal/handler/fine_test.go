package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

func TestFineHandler_RequestPayment(t *testing.T) {
	svc := &mocks.MockFineService{}
	svc.On("RequestPayment", mock.Anything, "1001", mock.MatchedBy(func(req domain.FinePaymentRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(5000)) && req.ProofURL == "https://example.com/bukti.jpg"
	})).Return(&domain.Student{NIS: "1001"}, nil)
	router, _ := newTestRouter(NewFineHandler(svc))

	w := do(t, router, http.MethodPost, "/api/v1/me/fine-payments", studentToken,
		`{"jumlah": 5000, "bukti_pembayaran": "https://example.com/bukti.jpg"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestFineHandler_RequestPaymentBadProof(t *testing.T) {
	svc := &mocks.MockFineService{}
	router, _ := newTestRouter(NewFineHandler(svc))

	w := do(t, router, http.MethodPost, "/api/v1/me/fine-payments", studentToken,
		`{"jumlah": 5000, "bukti_pembayaran": "not a url"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RequestPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestFineHandler_ExceedsFine(t *testing.T) {
	svc := &mocks.MockFineService{}
	svc.On("RequestPayment", mock.Anything, "1001", mock.Anything).
		Return(nil, customError.WrapPaymentExceedsFine("9000", "3000"))
	router, _ := newTestRouter(NewFineHandler(svc))

	w := do(t, router, http.MethodPost, "/api/v1/me/fine-payments", studentToken, `{"jumlah": 9000}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, customError.ErrCodePaymentExceedsFine, decodeEnvelope(t, w).Code)
}

func TestFineHandler_Approve(t *testing.T) {
	svc := &mocks.MockFineService{}
	svc.On("Approve", mock.Anything, domain.Actor{AdminID: 7, Username: "pustakawan"}, int64(4)).
		Return(&domain.FinePayment{ID: 4, Status: domain.FinePaymentApproved}, nil)
	router, _ := newTestRouter(NewFineHandler(svc))

	w := do(t, router, http.MethodPost, "/api/v1/admin/fine-payments/4/approve", adminToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

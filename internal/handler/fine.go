package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type paymentDecision func(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error)

type FineHandler struct {
	service   FineService
	validator *validator.Validate
}

func NewFineHandler(service FineService) *FineHandler {
	return &FineHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *FineHandler) Register(r Routes) {
	r.Student.HandleFunc("/fine-payments", h.StudentPayments).Methods(http.MethodGet)
	r.Student.HandleFunc("/fine-payments", h.RequestPayment).Methods(http.MethodPost)

	r.Admin.HandleFunc("/fine-payments", h.List).Methods(http.MethodGet)
	r.Admin.HandleFunc("/fine-payments/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.Admin.HandleFunc("/fine-payments/{id:[0-9]+}/approve", h.Approve).Methods(http.MethodPost)
	r.Admin.HandleFunc("/fine-payments/{id:[0-9]+}/reject", h.Reject).Methods(http.MethodPost)
}

// RequestPayment handles POST /me/fine-payments
func (h *FineHandler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.FinePaymentRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	student, err := h.service.RequestPayment(r.Context(), nis, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, student)
}

// StudentPayments handles GET /me/fine-payments
func (h *FineHandler) StudentPayments(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.service.ListForStudent(r.Context(), nis, listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *FineHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *FineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

func (h *FineHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.service.Approve)
}

func (h *FineHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.service.Reject)
}

func (h *FineHandler) resolve(w http.ResponseWriter, r *http.Request, decide paymentDecision) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := decide(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

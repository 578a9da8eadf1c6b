package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type loanDecision func(ctx context.Context, actor domain.Actor, loanID int64) (*domain.LoanView, error)

type CirculationHandler struct {
	service   CirculationService
	validator *validator.Validate
	decisions map[string]loanDecision
}

func NewCirculationHandler(service CirculationService) *CirculationHandler {
	return &CirculationHandler{
		service:   service,
		validator: validator.New(),
		decisions: map[string]loanDecision{
			"approve-borrow":    service.ApproveBorrow,
			"reject-borrow":     service.RejectBorrow,
			"approve-return":    service.ApproveReturn,
			"reject-return":     service.RejectReturn,
			"approve-extension": service.ApproveExtension,
			"reject-extension":  service.RejectExtension,
		},
	}
}

func (h *CirculationHandler) Register(r Routes) {
	r.Student.HandleFunc("/loans", h.History).Methods(http.MethodGet)
	r.Student.HandleFunc("/loans", h.Borrow).Methods(http.MethodPost)
	r.Student.HandleFunc("/loans/eligibility", h.Eligibility).Methods(http.MethodGet)
	r.Student.HandleFunc("/loans/{id:[0-9]+}", h.StudentLoan).Methods(http.MethodGet)
	r.Student.HandleFunc("/loans/{id:[0-9]+}/return", h.RequestReturn).Methods(http.MethodPost)
	r.Student.HandleFunc("/loans/{id:[0-9]+}/extend", h.RequestExtension).Methods(http.MethodPost)

	r.Admin.HandleFunc("/loans", h.List).Methods(http.MethodGet)
	r.Admin.HandleFunc("/loans/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.Admin.HandleFunc("/loans/{id:[0-9]+}/{decision}", h.Decide).Methods(http.MethodPost)
	r.Admin.HandleFunc("/fines/calculate", h.CalculateFines).Methods(http.MethodPost)
}

// Borrow handles POST /me/loans
func (h *CirculationHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.BorrowRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	student, err := h.service.RequestBorrow(r.Context(), nis, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, student)
}

// Eligibility handles GET /me/loans/eligibility
func (h *CirculationHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.service.Eligibility(r.Context(), nis)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}

// History handles GET /me/loans
func (h *CirculationHandler) History(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.service.StudentHistory(r.Context(), nis, listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *CirculationHandler) StudentLoan(w http.ResponseWriter, r *http.Request) {
	h.studentAction(w, r, h.service.GetStudentLoan)
}

func (h *CirculationHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	h.studentAction(w, r, h.service.RequestReturn)
}

func (h *CirculationHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	h.studentAction(w, r, h.service.RequestExtension)
}

// List handles GET /admin/loans
func (h *CirculationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListLoans(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

// Get handles GET /admin/loans/{id}
func (h *CirculationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, loan)
}

// Decide handles POST /admin/loans/{id}/{decision}
func (h *CirculationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	decide, ok := h.decisions[mux.Vars(r)["decision"]]
	if !ok {
		response.NotFound(w, "unknown loan decision")
		return
	}

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

	loan, err := decide(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, loan)
}

// CalculateFines handles POST /admin/fines/calculate
func (h *CirculationHandler) CalculateFines(w http.ResponseWriter, r *http.Request) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.service.CalculateOverdueFines(r.Context(), &actor); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, "Denda keterlambatan berhasil dihitung", nil)
}

func (h *CirculationHandler) studentAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, nis string, loanID int64) (*domain.LoanView, error),
) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	loan, err := action(r.Context(), nis, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, loan)
}


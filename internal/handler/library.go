package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type LibraryHandler struct {
	service   LibraryService
	validator *validator.Validate
}

func NewLibraryHandler(service LibraryService) *LibraryHandler {
	return &LibraryHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *LibraryHandler) Register(r Routes) {
	r.Public.HandleFunc("/library/status", h.Status).Methods(http.MethodGet)
	r.Admin.HandleFunc("/library/status", h.SetStatus).Methods(http.MethodPut)
}

func (h *LibraryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, status)
}

// SetStatus handles PUT /admin/library/status
func (h *LibraryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.LibraryStatusRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	status, err := h.service.SetStatus(r.Context(), actor, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, status)
}

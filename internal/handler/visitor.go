package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type VisitorHandler struct {
	service   VisitorService
	validator *validator.Validate
}

func NewVisitorHandler(service VisitorService) *VisitorHandler {
	return &VisitorHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *VisitorHandler) Register(r Routes) {
	r.Public.HandleFunc("/visitors", h.CheckIn).Methods(http.MethodPost)

	r.Admin.HandleFunc("/visitors", h.List).Methods(http.MethodGet)
	r.Admin.HandleFunc("/visitors/present", h.Present).Methods(http.MethodGet)
	r.Admin.HandleFunc("/visitors/{id:[0-9]+}/checkout", h.CheckOut).Methods(http.MethodPost)
	r.Admin.HandleFunc("/visitors/{id:[0-9]+}/toggle", h.Toggle).Methods(http.MethodPost)
}

// CheckIn handles POST /visitors from the guest book kiosk.
func (h *VisitorHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var form domain.VisitorCheckIn
	if err := bind(h.validator, r, &form); err != nil {
		response.FromError(w, err)
		return
	}

	visitor, err := h.service.CheckIn(r.Context(), form)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, visitor)
}

func (h *VisitorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *VisitorHandler) Present(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountPresent(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, map[string]int64{"pengunjung_hadir": count})
}

func (h *VisitorHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.CheckOut)
}

func (h *VisitorHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Toggle)
}

func (h *VisitorHandler) update(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, id int64) (*domain.Visitor, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	visitor, err := change(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, visitor)
}

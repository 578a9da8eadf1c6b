package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type AuthHandler struct {
	service   AuthService
	validator *validator.Validate
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *AuthHandler) Register(r Routes) {
	r.Public.HandleFunc("/login/student", h.LoginStudent).Methods(http.MethodPost)
	r.Public.HandleFunc("/login/admin", h.LoginAdmin).Methods(http.MethodPost)

	r.Authed.HandleFunc("/current", h.Current).Methods(http.MethodGet)
	r.Authed.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
}

// LoginStudent handles POST /login/student with the NIS as identifier.
func (h *AuthHandler) LoginStudent(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	resp, err := h.service.LoginStudent(r.Context(), req.Identifier, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, resp)
}

// LoginAdmin handles POST /login/admin with the username as identifier.
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	resp, err := h.service.LoginAdmin(r.Context(), req.Identifier, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		response.FromError(w, customError.WrapUnauthorized("not logged in"))
		return
	}

	response.Success(w, sess)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		response.FromError(w, customError.WrapUnauthorized("not logged in"))
		return
	}

	if err := h.service.Logout(r.Context(), sess); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, "Berhasil keluar", nil)
}

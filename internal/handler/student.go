package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type studentAction func(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error)

type StudentHandler struct {
	service   StudentService
	validator *validator.Validate
	actions   map[string]studentAction
}

func NewStudentHandler(service StudentService) *StudentHandler {
	return &StudentHandler{
		service:   service,
		validator: validator.New(),
		actions: map[string]studentAction{
			"approve":    service.Approve,
			"reject":     service.Reject,
			"activate":   service.Activate,
			"deactivate": service.Deactivate,
		},
	}
}

func (h *StudentHandler) Register(r Routes) {
	r.Public.HandleFunc("/register", h.SelfRegister).Methods(http.MethodPost)

	r.Student.HandleFunc("/profile", h.Profile).Methods(http.MethodGet)

	r.Admin.HandleFunc("/students", h.List).Methods(http.MethodGet)
	r.Admin.HandleFunc("/students", h.Create).Methods(http.MethodPost)
	r.Admin.HandleFunc("/students/{nis}", h.Get).Methods(http.MethodGet)
	r.Admin.HandleFunc("/students/{nis}", h.Update).Methods(http.MethodPut)
	r.Admin.HandleFunc("/students/{nis}/{action}", h.ChangeStatus).Methods(http.MethodPost)
}

// SelfRegister handles POST /register. The account waits for approval.
func (h *StudentHandler) SelfRegister(w http.ResponseWriter, r *http.Request) {
	var form domain.CreateStudent
	if err := bind(h.validator, r, &form); err != nil {
		response.FromError(w, err)
		return
	}

	student, err := h.service.Register(r.Context(), form)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, student)
}

// Profile handles GET /me/profile
func (h *StudentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	nis, err := studentNIS(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	student, err := h.service.Get(r.Context(), nis)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, student)
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.Get(r.Context(), mux.Vars(r)["nis"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, student)
}

// Create handles POST /admin/students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.CreateStudent
	if err := bind(h.validator, r, &form); err != nil {
		response.FromError(w, err)
		return
	}
	h.save(w, r, form, http.StatusCreated)
}

// Update handles PUT /admin/students/{nis}
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form domain.EditStudent
	if err := decode(r, &form); err != nil {
		response.FromError(w, err)
		return
	}
	form.NIS = mux.Vars(r)["nis"]
	if err := validate(h.validator, &form); err != nil {
		response.FromError(w, err)
		return
	}
	h.save(w, r, form, http.StatusOK)
}

func (h *StudentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	action, ok := h.actions[vars["action"]]
	if !ok {
		response.NotFound(w, "unknown student action")
		return
	}

	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	student, err := action(r.Context(), actor, vars["nis"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, student)
}

func (h *StudentHandler) save(w http.ResponseWriter, r *http.Request, form domain.StudentForm, status int) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	student, err := h.service.Save(r.Context(), actor, form)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, status, student)
}

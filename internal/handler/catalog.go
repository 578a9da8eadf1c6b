package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type CatalogHandler struct {
	service   CatalogService
	validator *validator.Validate
}

func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *CatalogHandler) Register(r Routes) {
	r.Public.HandleFunc("/books", h.List).Methods(http.MethodGet)
	r.Public.HandleFunc("/books/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.Public.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)

	r.Admin.HandleFunc("/books", h.Create).Methods(http.MethodPost)
	r.Admin.HandleFunc("/books/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.Admin.HandleFunc("/books/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	r.Admin.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	r.Admin.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods(http.MethodDelete)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, book)
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, categories)
}

// Create handles POST /admin/books
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.CreateBook
	if err := bind(h.validator, r, &form); err != nil {
		response.FromError(w, err)
		return
	}
	h.save(w, r, form, http.StatusCreated)
}

// Update handles PUT /admin/books/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var form domain.EditBook
	if err := decode(r, &form); err != nil {
		response.FromError(w, err)
		return
	}
	form.ID = id
	if err := validate(h.validator, &form); err != nil {
		response.FromError(w, err)
		return
	}
	h.save(w, r, form, http.StatusOK)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, "Buku berhasil dihapus", nil)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.CategoryRequest
	if err := bind(h.validator, r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), actor, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteCategory(r.Context(), actor, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, "Kategori berhasil dihapus", nil)
}

func (h *CatalogHandler) save(w http.ResponseWriter, r *http.Request, form domain.BookForm, status int) {
	actor, err := adminActor(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	book, err := h.service.Save(r.Context(), actor, form)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, status, book)
}

package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/export"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type ReportHandler struct {
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(r Routes) {
	r.Admin.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	r.Admin.HandleFunc("/logs", h.AuditLog).Methods(http.MethodGet)
	r.Admin.HandleFunc("/export/{dataset}", h.Export).Methods(http.MethodGet)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *ReportHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.AuditLog(r.Context(), listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writePage(w, page)
}

// Export handles GET /admin/export/{dataset}?format=csv|xls|doc. The list
// filters and search of the dataset apply; paging does not.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	dataset, err := export.ParseDataset(mux.Vars(r)["dataset"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		response.FromError(w, err)
		return
	}

	file, err := h.service.Export(r.Context(), dataset, format, listQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.File(w, file.ContentType, file.Name, file.Body)
}

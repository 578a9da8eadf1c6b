package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yanuaran892/perpusmpn1sedati/internal/export"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

func TestReportHandler_Export(t *testing.T) {
	svc := &mocks.MockReportService{}
	q := pagination.Query{Search: "budi", Filters: map[string]string{"status": "dipinjam"}}
	svc.On("Export", mock.Anything, export.DatasetCirculation, export.FormatExcel, q).Return(&export.File{
		Name:        "circulation_20240501_093000.xls",
		ContentType: "application/vnd.ms-excel",
		Body:        []byte("\ufeff\"ID\"\n"),
	}, nil)
	router, _ := newTestRouter(NewReportHandler(svc))

	w := do(t, router, http.MethodGet, "/api/v1/admin/export/circulation?format=xls&search=budi&status=dipinjam", adminToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.ms-excel", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="circulation_20240501_093000.xls"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "\ufeff\"ID\"\n", w.Body.String())
	svc.AssertExpectations(t)
}

func TestReportHandler_ExportDefaultsToCSV(t *testing.T) {
	svc := &mocks.MockReportService{}
	svc.On("Export", mock.Anything, export.DatasetStudents, export.FormatCSV, mock.Anything).
		Return(&export.File{Name: "students.csv", ContentType: "text/csv", Body: []byte("\"NIS\"\n")}, nil)
	router, _ := newTestRouter(NewReportHandler(svc))

	w := do(t, router, http.MethodGet, "/api/v1/admin/export/students", adminToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_ExportRejectsUnknownInput(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "unknown format", path: "/api/v1/admin/export/students?format=pdf"},
		{name: "unknown dataset", path: "/api/v1/admin/export/books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockReportService{}
			router, _ := newTestRouter(NewReportHandler(svc))

			w := do(t, router, http.MethodGet, tt.path, adminToken, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReportHandler_ExportRequiresAdmin(t *testing.T) {
	svc := &mocks.MockReportService{}
	router, _ := newTestRouter(NewReportHandler(svc))

	w := do(t, router, http.MethodGet, "/api/v1/admin/export/students", studentToken, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/export"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
)

// ReportService builds the dashboard and file exports.
type ReportService struct {
	loans      repository.LoanRepository
	students   repository.StudentRepository
	visitors   repository.VisitorRepository
	payments   repository.FinePaymentRepository
	admins     repository.AdminRepository
	location   *time.Location
	pageSize   int
	maxPage    int
	exportPage int
	maxRows    int
	logger     *slog.Logger
	now        func() time.Time
}

func NewReportService(
	loans repository.LoanRepository,
	students repository.StudentRepository,
	visitors repository.VisitorRepository,
	payments repository.FinePaymentRepository,
	admins repository.AdminRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		loans:      loans,
		students:   students,
		visitors:   visitors,
		payments:   payments,
		admins:     admins,
		location:   cfg.LibraryLocation(),
		pageSize:   cfg.Business.DefaultPageSize,
		maxPage:    cfg.Business.MaxPageSize,
		exportPage: cfg.Business.MaxPageSize,
		maxRows:    cfg.Business.ExportMaxRows,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ReportService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	byStatus, err := s.loans.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	present, err := s.visitors.CountPresent(ctx, s.now().In(s.location))
	if err != nil {
		return nil, err
	}

	pendingStudents, err := s.students.CountByStatus(ctx, domain.StudentStatusPending)
	if err != nil {
		return nil, err
	}

	pendingPayments, err := s.payments.CountByStatus(ctx, domain.FinePaymentPending)
	if err != nil {
		return nil, err
	}

	if byStatus == nil {
		byStatus = []domain.LoanStatusCount{}
	}

	return &domain.DashboardSummary{
		LoansByStatus:   byStatus,
		VisitorsPresent: present,
		PendingStudents: pendingStudents,
		PendingPayments: pendingPayments,
	}, nil
}

// AuditLog lists admin actions, newest first.
func (s *ReportService) AuditLog(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error) {
	return s.admins.ListLogs(ctx, q.Normalize(s.pageSize, s.maxPage))
}

// Export renders every row matching q's search and filters. Paging in q
// is ignored; rows are read page by page up to the configured cap.
func (s *ReportService) Export(ctx context.Context, dataset export.Dataset, format export.Format, q pagination.Query) (*export.File, error) {
	q.Page = 1
	q.PageSize = s.exportPage

	var table export.Table
	var err error
	switch dataset {
	case export.DatasetCirculation:
		var rows []domain.LoanView
		rows, err = collect[domain.LoanView](ctx, q, s.maxRows, s.loans.List)
		table = export.LoanTable(rows, s.location)
	case export.DatasetStudents:
		var rows []domain.Student
		rows, err = collect[domain.Student](ctx, q, s.maxRows, s.students.List)
		table = export.StudentTable(rows)
	case export.DatasetVisitors:
		var rows []domain.Visitor
		rows, err = collect[domain.Visitor](ctx, q, s.maxRows, s.visitors.List)
		table = export.VisitorTable(rows)
	case export.DatasetFines:
		var rows []domain.FinePayment
		rows, err = collect[domain.FinePayment](ctx, q, s.maxRows, s.payments.List)
		table = export.FinePaymentTable(rows, s.location)
	default:
		_, err = export.ParseDataset(string(dataset))
	}
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s_%s", dataset, s.now().In(s.location).Format("20060102_150405"))
	file, err := export.Render(table, format, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export rendered", "dataset", dataset, "format", format, "rows", len(table.Rows))
	return file, nil
}

// collect walks the list until it is exhausted or limit rows are read.
func collect[T any](ctx context.Context, q pagination.Query, limit int, fetch pagination.FetchFunc[T]) ([]T, error) {
	var rows []T
	list := pagination.NewList(q, fetch)
	err := list.Walk(ctx, func(page []T) error {
		rows = append(rows, page...)
		if limit > 0 && len(rows) >= limit {
			rows = rows[:limit]
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil, err
	}
	return rows, nil
}

var errStopWalk = errors.New("export row limit reached")

package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/utils"
)

// FineService handles requests to pay off outstanding fines.
type FineService struct {
	procedures repository.Procedures
	payments   repository.FinePaymentRepository
	students   repository.StudentRepository
	audit      auditor
	pageSize   int
	maxPage    int
	logger     *slog.Logger
}

func NewFineService(
	procedures repository.Procedures,
	payments repository.FinePaymentRepository,
	students repository.StudentRepository,
	admins repository.AdminRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *FineService {
	return &FineService{
		procedures: procedures,
		payments:   payments,
		students:   students,
		audit:      auditor{admins: admins, logger: logger},
		pageSize:   cfg.Business.DefaultPageSize,
		maxPage:    cfg.Business.MaxPageSize,
		logger:     logger,
	}
}

// RequestPayment submits a payment of req.Amount against the student's
// outstanding fine. The amount is checked against a fresh read of the
// student before the procedure is called.
func (s *FineService) RequestPayment(ctx context.Context, nis string, req domain.FinePaymentRequest) (*domain.Student, error) {
	if !req.Amount.IsPositive() || !utils.IsWholeRupiah(req.Amount) {
		return nil, customError.WrapInvalidPaymentAmount(req.Amount.String())
	}

	student, err := s.students.GetByNIS(ctx, nis)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(student.TotalFine) {
		return nil, customError.WrapPaymentExceedsFine(req.Amount.StringFixed(0), student.TotalFine.StringFixed(0))
	}

	if err := s.procedures.RequestFinePayment(ctx, nis, req.Amount, req.ProofURL); err != nil {
		return nil, err
	}

	s.logger.Info("fine payment requested", "nis", nis, "amount", req.Amount.String())

	return s.students.GetByNIS(ctx, nis)
}

func (s *FineService) Approve(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error) {
	return s.resolve(ctx, actor, paymentID, "approve_fine_payment", s.procedures.ApproveFinePayment)
}

func (s *FineService) Reject(ctx context.Context, actor domain.Actor, paymentID int64) (*domain.FinePayment, error) {
	return s.resolve(ctx, actor, paymentID, "reject_fine_payment", s.procedures.RejectFinePayment)
}

func (s *FineService) Get(ctx context.Context, paymentID int64) (*domain.FinePayment, error) {
	return s.payments.GetByID(ctx, paymentID)
}

func (s *FineService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	return s.payments.List(ctx, q.Normalize(s.pageSize, s.maxPage))
}

// ListForStudent pins the nis filter to the caller.
func (s *FineService) ListForStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = make(map[string]string, 1)
	}
	filters["nis"] = nis
	q.Filters = filters
	return s.List(ctx, q)
}

func (s *FineService) resolve(
	ctx context.Context,
	actor domain.Actor,
	paymentID int64,
	action string,
	call func(ctx context.Context, paymentID int64, actor domain.Actor) error,
) (*domain.FinePayment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.FinePaymentPending {
		return nil, customError.WrapInvalidTransition(action, payment.Status)
	}

	if err := call(ctx, paymentID, actor); err != nil {
		return nil, err
	}

	fresh, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, action,
		fmt.Sprintf("pembayaran %d: %s Rp%s", paymentID, payment.NIS, payment.Amount.StringFixed(0)))
	return fresh, nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/utils"
)

// VisitorService keeps the guest book.
type VisitorService struct {
	visitors repository.VisitorRepository
	location *time.Location
	pageSize int
	maxPage  int
	logger   *slog.Logger
	now      func() time.Time
}

func NewVisitorService(visitors repository.VisitorRepository, cfg *config.Config, logger *slog.Logger) *VisitorService {
	return &VisitorService{
		visitors: visitors,
		location: cfg.LibraryLocation(),
		pageSize: cfg.Business.DefaultPageSize,
		maxPage:  cfg.Business.MaxPageSize,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckIn records a kiosk entry for today.
func (s *VisitorService) CheckIn(ctx context.Context, form domain.VisitorCheckIn) (*domain.Visitor, error) {
	now := s.now().In(s.location)
	visitor := &domain.Visitor{
		NIS:       form.NIS,
		Name:      form.Name,
		Class:     form.Class,
		Purpose:   form.Purpose,
		VisitDate: utils.StartOfDay(now),
		VisitTime: now.Format(time.TimeOnly),
		Status:    domain.VisitorPresent,
	}

	if err := s.visitors.Create(ctx, visitor); err != nil {
		return nil, err
	}
	return visitor, nil
}

// CheckInStudent is the automatic entry made at login. A student already
// present today keeps their open entry.
func (s *VisitorService) CheckInStudent(ctx context.Context, student *domain.Student) (*domain.Visitor, error) {
	today := s.now().In(s.location)

	open, err := s.visitors.FindOpen(ctx, student.NIS, today)
	if err == nil {
		return open, nil
	}
	if !customError.Is(err, customError.ErrNotFound) {
		return nil, err
	}

	nis, class := student.NIS, student.Class
	purpose := "Login"
	return s.CheckIn(ctx, domain.VisitorCheckIn{NIS: &nis, Name: student.Name, Class: &class, Purpose: &purpose})
}

// CheckOutStudent closes the student's open entry for today, if any.
func (s *VisitorService) CheckOutStudent(ctx context.Context, nis string) error {
	open, err := s.visitors.FindOpen(ctx, nis, s.now().In(s.location))
	if err != nil {
		if customError.Is(err, customError.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.visitors.UpdateStatus(ctx, open.ID, domain.VisitorDeparted)
}

// CheckOut marks a present visitor as departed.
func (s *VisitorService) CheckOut(ctx context.Context, id int64) (*domain.Visitor, error) {
	visitor, err := s.visitors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != domain.VisitorPresent {
		return nil, customError.WrapInvalidTransition("check out visitor", visitor.Status)
	}
	return s.setStatus(ctx, id, domain.VisitorDeparted)
}

// Toggle flips an entry between present and departed.
func (s *VisitorService) Toggle(ctx context.Context, id int64) (*domain.Visitor, error) {
	visitor, err := s.visitors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := domain.VisitorDeparted
	if visitor.Status == domain.VisitorDeparted {
		next = domain.VisitorPresent
	}
	return s.setStatus(ctx, id, next)
}

// SweepStale closes entries left open on previous days.
func (s *VisitorService) SweepStale(ctx context.Context) (int64, error) {
	closed, err := s.visitors.CloseBefore(ctx, s.now().In(s.location))
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		s.logger.Info("closed stale visitor entries", "count", closed)
	}
	return closed, nil
}

func (s *VisitorService) CountPresent(ctx context.Context) (int64, error) {
	return s.visitors.CountPresent(ctx, s.now().In(s.location))
}

func (s *VisitorService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error) {
	return s.visitors.List(ctx, q.Normalize(s.pageSize, s.maxPage))
}

func (s *VisitorService) setStatus(ctx context.Context, id int64, status string) (*domain.Visitor, error) {
	if err := s.visitors.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.visitors.GetByID(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// StudentService manages member accounts. Loan and fine counters on the
// student row are never written here.
type StudentService struct {
	students        repository.StudentRepository
	audit           auditor
	defaultMaxLoans int
	hashCost        int
	pageSize        int
	maxPage         int
	logger          *slog.Logger
}

func NewStudentService(
	students repository.StudentRepository,
	admins repository.AdminRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *StudentService {
	return &StudentService{
		students:        students,
		audit:           auditor{admins: admins, logger: logger},
		defaultMaxLoans: cfg.Business.DefaultMaxLoans,
		hashCost:        bcrypt.DefaultCost,
		pageSize:        cfg.Business.DefaultPageSize,
		maxPage:         cfg.Business.MaxPageSize,
		logger:          logger,
	}
}

// Register creates a self-registered account waiting for approval.
func (s *StudentService) Register(ctx context.Context, form domain.CreateStudent) (*domain.Student, error) {
	student, err := s.newStudent(form, domain.StudentStatusPending)
	if err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student registered", "nis", student.NIS)
	return student, nil
}

// Save creates or edits an account from the admin form.
func (s *StudentService) Save(ctx context.Context, actor domain.Actor, form domain.StudentForm) (*domain.Student, error) {
	switch f := form.(type) {
	case domain.CreateStudent:
		student, err := s.newStudent(f, domain.StudentStatusActive)
		if err != nil {
			return nil, err
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, err
		}
		s.audit.record(ctx, actor, "create_student", fmt.Sprintf("siswa %s (%s)", student.NIS, student.Name))
		return student, nil

	case domain.EditStudent:
		student, err := s.students.GetByNIS(ctx, f.NIS)
		if err != nil {
			return nil, err
		}
		if err := s.applyEdit(student, f); err != nil {
			return nil, err
		}
		if err := s.students.Update(ctx, student); err != nil {
			return nil, err
		}
		s.audit.record(ctx, actor, "update_student", fmt.Sprintf("siswa %s", student.NIS))
		return s.students.GetByNIS(ctx, f.NIS)

	default:
		return nil, customError.WrapValidation(fmt.Errorf("unsupported student form %T", form))
	}
}

func (s *StudentService) Approve(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return s.changeStatus(ctx, actor, nis, "approve_student", domain.StudentStatusActive, domain.StudentStatusPending)
}

func (s *StudentService) Reject(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return s.changeStatus(ctx, actor, nis, "reject_student", domain.StudentStatusRejected, domain.StudentStatusPending)
}

func (s *StudentService) Activate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return s.changeStatus(ctx, actor, nis, "activate_student", domain.StudentStatusActive, domain.StudentStatusInactive)
}

func (s *StudentService) Deactivate(ctx context.Context, actor domain.Actor, nis string) (*domain.Student, error) {
	return s.changeStatus(ctx, actor, nis, "deactivate_student", domain.StudentStatusInactive, domain.StudentStatusActive)
}

func (s *StudentService) Get(ctx context.Context, nis string) (*domain.Student, error) {
	return s.students.GetByNIS(ctx, nis)
}

func (s *StudentService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error) {
	return s.students.List(ctx, q.Normalize(s.pageSize, s.maxPage))
}

func (s *StudentService) changeStatus(
	ctx context.Context,
	actor domain.Actor,
	nis, action string,
	to, from domain.StudentStatus,
) (*domain.Student, error) {
	student, err := s.students.GetByNIS(ctx, nis)
	if err != nil {
		return nil, err
	}
	if student.Status != from {
		return nil, customError.WrapInvalidTransition(action, string(student.Status))
	}

	if err := s.students.UpdateStatus(ctx, nis, to); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, action, fmt.Sprintf("siswa %s: %s -> %s", nis, from, to))
	return s.students.GetByNIS(ctx, nis)
}

func (s *StudentService) newStudent(form domain.CreateStudent, status domain.StudentStatus) (*domain.Student, error) {
	hash, err := s.hash(form.Password)
	if err != nil {
		return nil, err
	}

	maxLoans := form.MaxLoans
	if maxLoans <= 0 {
		maxLoans = s.defaultMaxLoans
	}

	return &domain.Student{
		NIS:          form.NIS,
		Name:         form.Name,
		Class:        form.Class,
		Email:        form.Email,
		PasswordHash: hash,
		MaxLoans:     maxLoans,
		Status:       status,
	}, nil
}

func (s *StudentService) applyEdit(student *domain.Student, form domain.EditStudent) error {
	if form.Name != nil {
		student.Name = *form.Name
	}
	if form.Class != nil {
		student.Class = *form.Class
	}
	if form.Email != nil {
		student.Email = form.Email
	}
	if form.MaxLoans != nil {
		if *form.MaxLoans < student.ActiveLoans {
			return customError.NewBusinessError(customError.ErrCodeValidation,
				fmt.Sprintf("max_peminjaman cannot be below the %d books currently borrowed", student.ActiveLoans),
				customError.ErrValidation)
		}
		student.MaxLoans = *form.MaxLoans
	}
	if form.Password != nil {
		hash, err := s.hash(*form.Password)
		if err != nil {
			return err
		}
		student.PasswordHash = hash
	}
	return nil
}

func (s *StudentService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", customError.WrapValidation(err)
	}
	return string(hash), nil
}

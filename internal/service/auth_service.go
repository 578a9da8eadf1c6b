package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// StudentVisits is what login and logout need from the guest book.
type StudentVisits interface {
	CheckInStudent(ctx context.Context, student *domain.Student) (*domain.Visitor, error)
	CheckOutStudent(ctx context.Context, nis string) error
}

// AuthService logs students and staff in and out.
type AuthService struct {
	students repository.StudentRepository
	admins   repository.AdminRepository
	sessions session.Store
	tokens   *session.Tokens
	visits   StudentVisits
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(
	students repository.StudentRepository,
	admins repository.AdminRepository,
	sessions session.Store,
	visits StudentVisits,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		students: students,
		admins:   admins,
		sessions: sessions,
		tokens:   session.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		visits:   visits,
		ttl:      cfg.Auth.SessionTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// LoginStudent authenticates by NIS. Only active accounts may log in; a
// successful login also records a library visit.
func (s *AuthService) LoginStudent(ctx context.Context, nis, password string) (*domain.LoginResponse, error) {
	student, err := s.students.GetByNIS(ctx, nis)
	if err != nil {
		if customError.Is(err, customError.ErrNotFound) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	if student.Status != domain.StudentStatusActive {
		return nil, customError.WrapAccountInactive(string(student.Status))
	}

	sess := session.New(session.RoleStudent, student.NIS, student.Name, s.now(), s.ttl)
	resp, err := s.start(ctx, sess)
	if err != nil {
		return nil, err
	}

	if s.visits != nil {
		if _, err := s.visits.CheckInStudent(ctx, student); err != nil {
			s.logger.Warn("automatic visitor check-in failed", "nis", student.NIS, "error", err)
		}
	}

	return resp, nil
}

// LoginAdmin authenticates library staff by username.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if customError.Is(err, customError.ErrNotFound) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	sess := session.New(session.RoleAdmin, strconv.FormatInt(admin.ID, 10), admin.Name, s.now(), s.ttl)
	sess.AdminID = admin.ID
	sess.Username = admin.Username
	return s.start(ctx, sess)
}

// Authenticate resolves a bearer token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Load(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	if sess.Role != claims.Role || sess.Subject != claims.Subject {
		return nil, customError.WrapUnauthorized("token does not match session")
	}
	return sess, nil
}

// Logout ends the session. A student's open visit is closed first.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if sess.Role == session.RoleStudent && s.visits != nil {
		if err := s.visits.CheckOutStudent(ctx, sess.Subject); err != nil {
			s.logger.Warn("automatic visitor check-out failed", "nis", sess.Subject, "error", err)
		}
	}
	return s.sessions.Clear(ctx, sess.ID)
}

// Actor turns an admin session into the identity recorded on admin actions.
func Actor(sess *session.Session) domain.Actor {
	return domain.Actor{AdminID: sess.AdminID, Username: sess.Username}
}

func (s *AuthService) start(ctx context.Context, sess *session.Session) (*domain.LoginResponse, error) {
	if err := s.sessions.Persist(ctx, sess); err != nil {
		return nil, err
	}

	token, err := s.tokens.Sign(sess)
	if err != nil {
		_ = s.sessions.Clear(ctx, sess.ID)
		return nil, customError.WrapUnauthorized("could not issue token")
	}

	return &domain.LoginResponse{
		Token:     token,
		Role:      sess.Role,
		Subject:   sess.Subject,
		Name:      sess.Name,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

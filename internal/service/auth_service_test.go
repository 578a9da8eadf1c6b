package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type mockVisits struct {
	mock.Mock
}

func (m *mockVisits) CheckInStudent(ctx context.Context, student *domain.Student) (*domain.Visitor, error) {
	args := m.Called(ctx, student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visitor), args.Error(1)
}

func (m *mockVisits) CheckOutStudent(ctx context.Context, nis string) error {
	args := m.Called(ctx, nis)
	return args.Error(0)
}

type authFixture struct {
	students *mocks.MockStudentRepository
	admins   *mocks.MockAdminRepository
	sessions *mocks.MockSessionStore
	visits   *mockVisits
	service  *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		students: &mocks.MockStudentRepository{},
		admins:   &mocks.MockAdminRepository{},
		sessions: &mocks.MockSessionStore{},
		visits:   &mockVisits{},
	}
	f.service = NewAuthService(f.students, f.admins, f.sessions, f.visits, testConfig(), discardLogger())
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginStudent_StartsSessionAndChecksIn(t *testing.T) {
	f := newAuthFixture()
	student := &domain.Student{NIS: "1001", Name: "Budi", PasswordHash: hashed(t, "rahasia1"), Status: domain.StudentStatusActive}

	var persisted *session.Session
	f.students.On("GetByNIS", mock.Anything, "1001").Return(student, nil)
	f.sessions.On("Persist", mock.Anything, mock.MatchedBy(func(s *session.Session) bool {
		return s.Role == session.RoleStudent && s.Subject == "1001"
	})).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*session.Session)
	}).Return(nil)
	f.visits.On("CheckInStudent", mock.Anything, student).Return(&domain.Visitor{ID: 1}, nil)

	resp, err := f.service.LoginStudent(context.Background(), "1001", "rahasia1")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, session.RoleStudent, resp.Role)
	f.visits.AssertExpectations(t)

	f.sessions.On("Load", mock.Anything, persisted.ID).Return(persisted, nil)
	sess, err := f.service.Authenticate(context.Background(), resp.Token)

	require.NoError(t, err)
	assert.Equal(t, "1001", sess.Subject)
}

func TestLoginStudent_CheckInFailureDoesNotBlockLogin(t *testing.T) {
	f := newAuthFixture()
	student := &domain.Student{NIS: "1001", PasswordHash: hashed(t, "rahasia1"), Status: domain.StudentStatusActive}
	f.students.On("GetByNIS", mock.Anything, "1001").Return(student, nil)
	f.sessions.On("Persist", mock.Anything, mock.Anything).Return(nil)
	f.visits.On("CheckInStudent", mock.Anything, student).Return(nil, errors.New("insert failed"))

	_, err := f.service.LoginStudent(context.Background(), "1001", "rahasia1")

	assert.NoError(t, err)
}

func TestLoginStudent_Refused(t *testing.T) {
	tests := []struct {
		name     string
		student  *domain.Student
		lookup   error
		password string
		wantCode string
	}{
		{
			name:     "unknown nis",
			lookup:   customError.WrapNotFound("student", "1001"),
			password: "rahasia1",
			wantCode: customError.ErrCodeInvalidCredentials,
		},
		{
			name:     "wrong password",
			student:  &domain.Student{NIS: "1001", Status: domain.StudentStatusActive},
			password: "salah",
			wantCode: customError.ErrCodeInvalidCredentials,
		},
		{
			name:     "pending account",
			student:  &domain.Student{NIS: "1001", Status: domain.StudentStatusPending},
			password: "rahasia1",
			wantCode: customError.ErrCodeAccountInactive,
		},
		{
			name:     "deactivated account",
			student:  &domain.Student{NIS: "1001", Status: domain.StudentStatusInactive},
			password: "rahasia1",
			wantCode: customError.ErrCodeAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			if tt.student != nil {
				tt.student.PasswordHash = hashed(t, "rahasia1")
				f.students.On("GetByNIS", mock.Anything, "1001").Return(tt.student, nil)
			} else {
				f.students.On("GetByNIS", mock.Anything, "1001").Return(nil, tt.lookup)
			}

			_, err := f.service.LoginStudent(context.Background(), "1001", tt.password)

			assert.Equal(t, tt.wantCode, customError.Code(err))
			f.sessions.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
			f.visits.AssertNotCalled(t, "CheckInStudent", mock.Anything, mock.Anything)
		})
	}
}

func TestLoginAdmin_SessionCarriesActor(t *testing.T) {
	f := newAuthFixture()
	f.admins.On("GetByUsername", mock.Anything, "pustakawan").Return(&domain.Admin{
		ID: 7, Username: "pustakawan", Name: "Bu Rina", PasswordHash: hashed(t, "admin123"),
	}, nil)

	var persisted *session.Session
	f.sessions.On("Persist", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*session.Session)
	}).Return(nil)

	resp, err := f.service.LoginAdmin(context.Background(), "pustakawan", "admin123")

	require.NoError(t, err)
	assert.Equal(t, "7", resp.Subject)
	assert.Equal(t, domain.Actor{AdminID: 7, Username: "pustakawan"}, Actor(persisted))
}

func TestAuthenticate_Refused(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Authenticate(context.Background(), "not-a-token")

		assert.Equal(t, customError.ErrCodeUnauthorized, customError.Code(err))
		f.sessions.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("session cleared", func(t *testing.T) {
		f := newAuthFixture()
		f.admins.On("GetByUsername", mock.Anything, "pustakawan").Return(&domain.Admin{
			ID: 7, Username: "pustakawan", PasswordHash: hashed(t, "admin123"),
		}, nil)
		f.sessions.On("Persist", mock.Anything, mock.Anything).Return(nil)
		f.sessions.On("Load", mock.Anything, mock.Anything).Return(nil, customError.WrapUnauthorized("session has ended, please log in again"))

		resp, err := f.service.LoginAdmin(context.Background(), "pustakawan", "admin123")
		require.NoError(t, err)

		_, err = f.service.Authenticate(context.Background(), resp.Token)

		assert.Equal(t, customError.ErrCodeUnauthorized, customError.Code(err))
	})
}

func TestLogout(t *testing.T) {
	t.Run("student visit is closed", func(t *testing.T) {
		f := newAuthFixture()
		sess := &session.Session{ID: "abc", Role: session.RoleStudent, Subject: "1001"}
		f.visits.On("CheckOutStudent", mock.Anything, "1001").Return(nil)
		f.sessions.On("Clear", mock.Anything, "abc").Return(nil)

		require.NoError(t, f.service.Logout(context.Background(), sess))
		f.visits.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
	})

	t.Run("admin has no visit", func(t *testing.T) {
		f := newAuthFixture()
		sess := &session.Session{ID: "abc", Role: session.RoleAdmin, Subject: "7"}
		f.sessions.On("Clear", mock.Anything, "abc").Return(nil)

		require.NoError(t, f.service.Logout(context.Background(), sess))
		f.visits.AssertNotCalled(t, "CheckOutStudent", mock.Anything, mock.Anything)
	})
}

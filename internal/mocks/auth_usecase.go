package mocks

import (
	"context"

	"healthmate/internal/domain/entity"
	"healthmate/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// AuthUsecase is a mock implementation of usecase.AuthUsecase.
type AuthUsecase struct {
	mock.Mock
}

// NewAuthUsecase creates a mock with cleanup and expectation assertion
// registered on the test.
func NewAuthUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthUsecase {
	m := &AuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Login provides a mock function.
func (m *AuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)

	var output *usecase.LoginOutput
	if args.Get(0) != nil {
		output = args.Get(0).(*usecase.LoginOutput)
	}

	return output, args.Error(1)
}

// Signup provides a mock function.
func (m *AuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)

	var output *usecase.SignupOutput
	if args.Get(0) != nil {
		output = args.Get(0).(*usecase.SignupOutput)
	}

	return output, args.Error(1)
}

// RefreshToken provides a mock function.
func (m *AuthUsecase) RefreshToken(ctx context.Context) (*entity.Session, error) {
	args := m.Called(ctx)

	var session *entity.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*entity.Session)
	}

	return session, args.Error(1)
}

// Logout provides a mock function.
func (m *AuthUsecase) Logout(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// GetUserRole provides a mock function.
func (m *AuthUsecase) GetUserRole(ctx context.Context) (entity.Role, error) {
	args := m.Called(ctx)

	role, _ := args.Get(0).(entity.Role)

	return role, args.Error(1)
}

// GetSession provides a mock function.
func (m *AuthUsecase) GetSession(ctx context.Context) (*entity.Session, error) {
	args := m.Called(ctx)

	var session *entity.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*entity.Session)
	}

	return session, args.Error(1)
}

// SessionInfo provides a mock function.
func (m *AuthUsecase) SessionInfo(ctx context.Context) (*entity.SessionInfo, error) {
	args := m.Called(ctx)

	var info *entity.SessionInfo
	if args.Get(0) != nil {
		info = args.Get(0).(*entity.SessionInfo)
	}

	return info, args.Error(1)
}

package mocks

import (
	"context"

	"healthmate/internal/domain/service"
	"healthmate/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// OAuthUsecase is a mock implementation of usecase.OAuthUsecase.
type OAuthUsecase struct {
	mock.Mock
}

// NewOAuthUsecase creates a mock with cleanup and expectation assertion
// registered on the test.
func NewOAuthUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *OAuthUsecase {
	m := &OAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// LoginWithGoogle provides a mock function.
func (m *OAuthUsecase) LoginWithGoogle(ctx context.Context, surface service.BrowserSurface) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, surface)

	var output *usecase.LoginOutput
	if args.Get(0) != nil {
		output = args.Get(0).(*usecase.LoginOutput)
	}

	return output, args.Error(1)
}

package mocks

import (
	"context"
	"net/url"

	"healthmate/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// APIClient is a mock implementation of service.APIClient.
type APIClient struct {
	mock.Mock
}

// NewAPIClient creates a mock with cleanup and expectation assertion
// registered on the test.
func NewAPIClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *APIClient {
	m := &APIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Get provides a mock function.
func (m *APIClient) Get(ctx context.Context, path string, query url.Values) (*service.APIResponse, error) {
	args := m.Called(ctx, path, query)

	var resp *service.APIResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*service.APIResponse)
	}

	return resp, args.Error(1)
}

// Post provides a mock function.
func (m *APIClient) Post(ctx context.Context, path string, body any) (*service.APIResponse, error) {
	args := m.Called(ctx, path, body)

	var resp *service.APIResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*service.APIResponse)
	}

	return resp, args.Error(1)
}

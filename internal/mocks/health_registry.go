package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteflow/internal/ports"
)

// MockHealthRegistry mocks ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

// NewMockHealthRegistry creates a mock whose expectations are asserted on
// cleanup.
func NewMockHealthRegistry(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHealthRegistry) EXPECT() *MockHealthRegistryExpecter {
	return &MockHealthRegistryExpecter{mock: &m.Mock}
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) error {
	return m.Called(checker).Error(0)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) *ports.HealthResult {
	ret := m.Called(ctx)

	result, _ := ret.Get(0).(*ports.HealthResult)

	return result
}

type MockHealthRegistryExpecter struct {
	mock *mock.Mock
}

type MockHealthRegistryCheckAllCall struct {
	*mock.Call
}

func (e *MockHealthRegistryExpecter) CheckAll(ctx any) *MockHealthRegistryCheckAllCall {
	return &MockHealthRegistryCheckAllCall{Call: e.mock.On("CheckAll", ctx)}
}

func (c *MockHealthRegistryCheckAllCall) Return(result *ports.HealthResult) *MockHealthRegistryCheckAllCall {
	c.Call.Return(result)
	return c
}

type MockHealthRegistryRegisterCall struct {
	*mock.Call
}

func (e *MockHealthRegistryExpecter) Register(checker any) *MockHealthRegistryRegisterCall {
	return &MockHealthRegistryRegisterCall{Call: e.mock.On("Register", checker)}
}

func (c *MockHealthRegistryRegisterCall) Return(err error) *MockHealthRegistryRegisterCall {
	c.Call.Return(err)
	return c
}

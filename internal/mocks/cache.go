package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache mocks ports.Cache.
type MockCache struct {
	mock.Mock
}

// NewMockCache creates a mock whose expectations are asserted on cleanup.
func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockCache {
	m := &MockCache{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCache) EXPECT() *MockCacheExpecter {
	return &MockCacheExpecter{mock: &m.Mock}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)

	var value []byte
	if v := ret.Get(0); v != nil {
		value = v.([]byte)
	}

	return value, ret.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockCacheExpecter struct {
	mock *mock.Mock
}

type MockCacheGetCall struct {
	*mock.Call
}

func (e *MockCacheExpecter) Get(ctx, key any) *MockCacheGetCall {
	return &MockCacheGetCall{Call: e.mock.On("Get", ctx, key)}
}

func (c *MockCacheGetCall) Return(value []byte, err error) *MockCacheGetCall {
	c.Call.Return(value, err)
	return c
}

type MockCacheErrCall struct {
	*mock.Call
}

func (c *MockCacheErrCall) Return(err error) *MockCacheErrCall {
	c.Call.Return(err)
	return c
}

func (e *MockCacheExpecter) Set(ctx, key, value, ttl any) *MockCacheErrCall {
	return &MockCacheErrCall{Call: e.mock.On("Set", ctx, key, value, ttl)}
}

func (e *MockCacheExpecter) Delete(ctx, key any) *MockCacheErrCall {
	return &MockCacheErrCall{Call: e.mock.On("Delete", ctx, key)}
}

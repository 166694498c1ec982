package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// MockStatsLedger mocks ports.StatsLedger.
type MockStatsLedger struct {
	mock.Mock
}

// NewMockStatsLedger creates a mock whose expectations are asserted on
// cleanup.
func NewMockStatsLedger(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockStatsLedger {
	m := &MockStatsLedger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatsLedger) EXPECT() *MockStatsLedgerExpecter {
	return &MockStatsLedgerExpecter{mock: &m.Mock}
}

func (m *MockStatsLedger) Get(ctx context.Context) (domain.Stats, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(domain.Stats), ret.Error(1)
}

func (m *MockStatsLedger) Merge(ctx context.Context, patch domain.StatsPatch) (domain.Stats, error) {
	ret := m.Called(ctx, patch)
	return ret.Get(0).(domain.Stats), ret.Error(1)
}

func (m *MockStatsLedger) Increment(ctx context.Context, counter domain.Counter, delta int64) (domain.Stats, error) {
	ret := m.Called(ctx, counter, delta)
	return ret.Get(0).(domain.Stats), ret.Error(1)
}

type MockStatsLedgerExpecter struct {
	mock *mock.Mock
}

// MockStatsLedgerCall is shared by every ledger method; they all return
// (domain.Stats, error).
type MockStatsLedgerCall struct {
	*mock.Call
}

func (c *MockStatsLedgerCall) Return(stats domain.Stats, err error) *MockStatsLedgerCall {
	c.Call.Return(stats, err)
	return c
}

func (e *MockStatsLedgerExpecter) Get(ctx any) *MockStatsLedgerCall {
	return &MockStatsLedgerCall{Call: e.mock.On("Get", ctx)}
}

func (e *MockStatsLedgerExpecter) Merge(ctx, patch any) *MockStatsLedgerCall {
	return &MockStatsLedgerCall{Call: e.mock.On("Merge", ctx, patch)}
}

func (e *MockStatsLedgerExpecter) Increment(ctx, counter, delta any) *MockStatsLedgerCall {
	return &MockStatsLedgerCall{Call: e.mock.On("Increment", ctx, counter, delta)}
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// MockQuoteSource mocks ports.QuoteSource.
type MockQuoteSource struct {
	mock.Mock
}

// NewMockQuoteSource creates a mock named name whose expectations are
// asserted on cleanup.
func NewMockQuoteSource(t interface {
	mock.TestingT
	Cleanup(func())
}, name string,
) *MockQuoteSource {
	m := &MockQuoteSource{}
	m.Test(t)
	m.On("SourceName").Return(name).Maybe()
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQuoteSource) EXPECT() *MockQuoteSourceExpecter {
	return &MockQuoteSourceExpecter{mock: &m.Mock}
}

func (m *MockQuoteSource) SourceName() string {
	return m.Called().String(0)
}

func (m *MockQuoteSource) ListQuotes(ctx context.Context) ([]domain.RawQuote, error) {
	ret := m.Called(ctx)

	var quotes []domain.RawQuote
	if fn, ok := ret.Get(0).(func(context.Context) ([]domain.RawQuote, error)); ok {
		return fn(ctx)
	}

	if v := ret.Get(0); v != nil {
		quotes = v.([]domain.RawQuote)
	}

	return quotes, ret.Error(1)
}

type MockQuoteSourceExpecter struct {
	mock *mock.Mock
}

type MockQuoteSourceListQuotesCall struct {
	*mock.Call
}

func (e *MockQuoteSourceExpecter) ListQuotes(ctx any) *MockQuoteSourceListQuotesCall {
	return &MockQuoteSourceListQuotesCall{Call: e.mock.On("ListQuotes", ctx)}
}

func (c *MockQuoteSourceListQuotesCall) Return(quotes []domain.RawQuote, err error) *MockQuoteSourceListQuotesCall {
	c.Call.Return(quotes, err)
	return c
}

// RunAndReturn makes the call delegate to fn, e.g. to block on ctx.
func (c *MockQuoteSourceListQuotesCall) RunAndReturn(fn func(context.Context) ([]domain.RawQuote, error)) *MockQuoteSourceListQuotesCall {
	c.Call.Return(fn, nil)
	return c
}

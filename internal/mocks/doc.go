// Package mocks holds testify mocks for the ports interfaces, written in the
// mockery expecter style so tests read m.EXPECT().Method(...).Return(...).
package mocks

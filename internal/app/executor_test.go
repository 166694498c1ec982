package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	var steps []Step

	op := Operation[int, int, int, string]{
		Name: "double",
		Validate: func(context.Context, int) error {
			steps = append(steps, StepValidate)
			return nil
		},
		Perform: func(_ context.Context, in int) (int, error) {
			steps = append(steps, StepPerform)
			return in * 2, nil
		},
		Verify: func(_ context.Context, _ int, p int) (int, error) {
			steps = append(steps, StepVerify)
			return p, nil
		},
		Archive: func(context.Context, int, int) error {
			steps = append(steps, StepArchive)
			return nil
		},
		Respond: func(_ context.Context, _ int, v int) (string, error) {
			steps = append(steps, StepRespond)
			if v == 42 {
				return "ok", nil
			}

			return "bad", nil
		},
	}

	out, err := Execute(t.Context(), NewExecutor(nil), op, 21)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []Step{StepValidate, StepPerform, StepVerify, StepArchive, StepRespond}, steps)
}

func TestExecute_StopsAtFailedStep(t *testing.T) {
	boom := errors.New("boom")
	archived := false

	op := Operation[string, string, string, string]{
		Name:    "fails",
		Perform: func(_ context.Context, in string) (string, error) { return in, nil },
		Verify: func(context.Context, string, string) (string, error) {
			return "", domain.NewRenderError("verify", boom)
		},
		Archive: func(context.Context, string, string) error {
			archived = true
			return nil
		},
	}

	_, err := Execute(t.Context(), NewExecutor(nil), op, "x")
	require.Error(t, err)

	assert.False(t, archived, "archive must not run after a failed verify")
	assert.ErrorIs(t, err, boom)
	assert.True(t, domain.IsRender(err))

	step, ok := FailedStep(err)
	require.True(t, ok)
	assert.Equal(t, StepVerify, step)
}

func TestExecute_ValidationStopsBeforePerform(t *testing.T) {
	performed := false

	op := Operation[string, string, string, string]{
		Name:     "validate",
		Validate: func(context.Context, string) error { return domain.NewValidationError("text", "must not be empty") },
		Perform: func(context.Context, string) (string, error) {
			performed = true
			return "", nil
		},
	}

	_, err := Execute(t.Context(), NewExecutor(nil), op, "")
	require.Error(t, err)

	assert.False(t, performed)
	assert.True(t, domain.IsValidation(err))

	step, _ := FailedStep(err)
	assert.Equal(t, StepValidate, step)
}

func TestExecute_NilVerifyPassesThrough(t *testing.T) {
	op := Operation[int, int, int, int]{
		Name:    "passthrough",
		Perform: func(_ context.Context, in int) (int, error) { return in + 1, nil },
		Respond: func(_ context.Context, _ int, v int) (int, error) { return v, nil },
	}

	out, err := Execute(t.Context(), NewExecutor(nil), op, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestFailedStep_OtherErrors(t *testing.T) {
	_, ok := FailedStep(errors.New("plain"))
	assert.False(t, ok)
}

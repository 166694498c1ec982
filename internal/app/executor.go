package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

// Operations that change state run in five steps:
//
//  1. validate: check input before anything happens
//  2. perform:  do the work (render, call out)
//  3. verify:   check the work independently of perform's return value
//  4. archive:  record the side effect (counters, stores)
//  5. respond:  shape the result for the caller
//
// A failure at any step stops the run, so archive never records work that
// did not verify.

// Step names a stage of an Operation.
type Step string

// Steps in execution order.
const (
	StepValidate Step = "validate"
	StepPerform  Step = "perform"
	StepVerify   Step = "verify"
	StepArchive  Step = "archive"
	StepRespond  Step = "respond"
)

// StepError records the step at which an operation stopped.
type StepError struct {
	Operation string
	Step      Step
	Cause     error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Step, e.Cause)
}

// Unwrap exposes the cause so domain error checks see through the step.
func (e *StepError) Unwrap() error {
	return e.Cause
}

// FailedStep reports the step carried by err, if any.
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}

	return "", false
}

// Operation describes a five-step use case. Nil steps are skipped; a nil
// Verify passes the performed value through, which requires P and V to be
// the same type.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (P, error)
	Verify   func(ctx context.Context, in I, performed P) (V, error)
	Archive  func(ctx context.Context, in I, verified V) error
	Respond  func(ctx context.Context, in I, verified V) (O, error)
}

// Executor runs operations with step-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. Loggers found on the request context
// take precedence over logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

func (x *Executor) loggerFor(ctx context.Context, name string) *slog.Logger {
	logger := x.logger
	if l, ok := logging.Lookup(ctx); ok {
		logger = l
	}

	return logger.With(slog.String("operation", name))
}

// Execute runs op against in.
func Execute[I, P, V, O any](ctx context.Context, x *Executor, op Operation[I, P, V, O], in I) (O, error) {
	var zero O

	logger := x.loggerFor(ctx, op.Name)
	start := time.Now()

	fail := func(step Step, err error) error {
		level := slog.LevelError
		if step == StepValidate {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, "operation step failed",
			slog.String("step", string(step)),
			slog.String("error", err.Error()),
		)

		return &StepError{Operation: op.Name, Step: step, Cause: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, in); err != nil {
			return zero, fail(StepValidate, err)
		}
	}

	var performed P

	if op.Perform != nil {
		p, err := op.Perform(ctx, in)
		if err != nil {
			return zero, fail(StepPerform, err)
		}

		performed = p
	}

	var verified V

	if op.Verify != nil {
		v, err := op.Verify(ctx, in, performed)
		if err != nil {
			return zero, fail(StepVerify, err)
		}

		verified = v
	} else if v, ok := any(performed).(V); ok {
		verified = v
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, in, verified); err != nil {
			return zero, fail(StepArchive, err)
		}
	}

	var out O

	if op.Respond != nil {
		o, err := op.Respond(ctx, in, verified)
		if err != nil {
			return zero, fail(StepRespond, err)
		}

		out = o
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "operation completed",
		slog.Duration("duration", time.Since(start)),
	)

	return out, nil
}

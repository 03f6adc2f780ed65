package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// ExecutorOptions holds configuration overrides passed to NewExecutor.
type ExecutorOptions struct {
	// Logger receives execution diagnostics.
	Logger logging.Logger
}

// Executor resolves tools from a Registry and runs them with uniform error
// handling. Unknown tools and failed executions are reported as StatusError
// envelopes rather than Go errors so callers can forward results directly
// into conversation turns. Panics inside tool implementations are recovered
// and converted to error envelopes, keeping a misbehaving tool from taking
// down the reasoning loop.
type Executor struct {
	registry *Registry
	logger   logging.Logger
}

// NewExecutor constructs an Executor backed by the given registry.
func NewExecutor(registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{
		registry: registry,
		logger:   opts.Logger,
	}
}

// Execute runs the named tool and wraps its outcome in a Result envelope.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) Result {
	def, ok := e.registry.Get(name)
	if !ok {
		e.logger.Warn("tool.execute.unknown", "tool", name)

		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Tool '%s' not found", name),
		}
	}

	start := time.Now()

	e.logger.Debug("tool.execute.start", "tool", name, "async", def.Async())

	data, err := e.run(ctx, def, args)
	if err != nil {
		e.logger.Error("tool.execute.error", "tool", name, "error", err.Error())

		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Tool execution failed: %s", err),
			Tool:    name,
		}
	}

	e.logger.Info("tool.execute.success", "tool", name, "duration_ms", time.Since(start).Milliseconds())

	return Result{
		Status: StatusSuccess,
		Data:   data,
		Tool:   name,
	}
}

// run dispatches to the sync or async implementation, normalizing panics
// to errors.
func (e *Executor) run(ctx context.Context, def Definition, args map[string]any) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if def.Async() {
		dataCh, errCh := def.AsyncFunc(ctx, args)

		select {
		case d := <-dataCh:
			return d, nil
		case cErr := <-errCh:
			return nil, cErr
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if def.Func == nil {
		return nil, fmt.Errorf("tool '%s' has no implementation", def.Name)
	}

	return def.Func(ctx, args)
}

// AvailableTools returns the model-facing view of every registered tool.
func (e *Executor) AvailableTools() map[string]Spec {
	return e.registry.Specs("")
}

// Call names one tool invocation in a batch.
type Call struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// BatchResult pairs a batch call with its result envelope.
type BatchResult struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Result Result         `json:"result"`
}

// ExecuteBatch runs calls sequentially, preserving order. Individual
// failures do not stop the batch.
func (e *Executor) ExecuteBatch(ctx context.Context, calls []Call) []BatchResult {
	results := make([]BatchResult, 0, len(calls))

	for _, call := range calls {
		args := call.Args
		if args == nil {
			args = map[string]any{}
		}

		results = append(results, BatchResult{
			Tool:   call.Tool,
			Args:   args,
			Result: e.Execute(ctx, call.Tool, args),
		})
	}

	return results
}

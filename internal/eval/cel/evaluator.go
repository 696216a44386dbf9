package cel

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/aescanero/dago-node-renderer/internal/helpers"
)

// Evaluator evaluates CEL expressions over sequence items
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("index", cel.IntType),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// Evaluate evaluates a CEL expression with the given variables
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error) {
	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	out, _, err := program.ContextEval(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	return out.Value(), nil
}

// Predicate compiles expression into a helpers.Predicate. Items for which the expression
// fails or does not yield true are treated as not matching.
func (e *Evaluator) Predicate(expression string) (helpers.Predicate, error) {
	if _, err := e.getProgram(expression); err != nil {
		return nil, err
	}

	return func(item interface{}, index int, _ []interface{}) bool {
		result, err := e.Evaluate(context.Background(), expression, itemVars(item, index))
		if err != nil {
			return false
		}
		matched, ok := result.(bool)
		return ok && matched
	}, nil
}

// Mapper compiles expression into a helpers.Mapper. Items for which the expression fails
// map to nil.
func (e *Evaluator) Mapper(expression string) (helpers.Mapper, error) {
	if _, err := e.getProgram(expression); err != nil {
		return nil, err
	}

	return func(item interface{}, index int, _ []interface{}) interface{} {
		result, err := e.Evaluate(context.Background(), expression, itemVars(item, index))
		if err != nil {
			return nil
		}
		return result
	}, nil
}

func itemVars(item interface{}, index int) map[string]interface{} {
	return map[string]interface{}{
		"item":  item,
		"index": index,
	}
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[expression] = program

	return program, nil
}

// ValidateExpression validates a CEL expression without evaluating it
func (e *Evaluator) ValidateExpression(expression string) error {
	_, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}
	return nil
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

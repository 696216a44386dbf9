package template

import (
	"fmt"
	"sync"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-renderer/internal/eval/cel"
	"github.com/aescanero/dago-node-renderer/internal/helpers"
)

// storageKey is the private data key holding the counters of one render.
const storageKey = "storage"

// Engine renders Handlebars templates
type Engine struct {
	cache       map[string]*raymond.Template
	mu          sync.RWMutex
	helpers     map[string]interface{}
	evaluator   *cel.Evaluator
	maxCounters int
	logger      *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used to report render failures
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEvaluator sets the CEL evaluator used for string predicates and projections.
// A nil evaluator restricts them to named predicates and property paths.
func WithEvaluator(evaluator *cel.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithMaxCounters bounds the number of incrementVar keys of a single render
func WithMaxCounters(n int) Option {
	return func(e *Engine) {
		e.maxCounters = n
	}
}

// NewEngine creates a new template engine
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		cache:       make(map[string]*raymond.Template),
		evaluator:   cel.NewEvaluator(),
		maxCounters: helpers.DefaultMaxKeys,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	// Helpers are bound to every template this engine compiles
	engine.helpers = engine.helperFuncs()

	return engine
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	// Each render gets its own variable storage
	privData := raymond.NewDataFrame()
	privData.Set(storageKey, helpers.NewCounters(e.maxCounters))

	// Execute the template
	result, err := tmpl.ExecWith(data, privData)
	if err != nil {
		e.logger.Debug("Template execution failed", zap.Error(err))
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	// Parse and compile the template
	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	tmpl.RegisterHelpers(e.helpers)

	// Cache the template
	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

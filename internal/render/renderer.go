package render

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-libs/pkg/ports"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-renderer/internal/eval/template"
)

// Mode represents the rendering strategy
type Mode string

const (
	// ModeTemplate renders the template only
	ModeTemplate Mode = "template"

	// ModeLLM renders the template and sends it as a prompt to the LLM
	ModeLLM Mode = "llm"
)

// Request represents a render request
type Request struct {
	Template  string                 `json:"template"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Mode      Mode                   `json:"mode,omitempty"`
	System    string                 `json:"system,omitempty"`
	Model     string                 `json:"model,omitempty"`
	MaxTokens int                    `json:"max_tokens,omitempty"`
}

// Result represents the result of a render
type Result struct {
	Output string `json:"output"`
	Prompt string `json:"prompt,omitempty"`
	Mode   string `json:"mode"`
	Model  string `json:"model,omitempty"`
}

// Renderer renders requests
type Renderer struct {
	templateEngine *template.Engine
	llmClient      ports.LLMClient
	model          string
	maxTokens      int
	logger         *zap.Logger
}

// NewRenderer creates a new renderer. llmClient may be nil, in which case only template
// mode is available.
func NewRenderer(engine *template.Engine, llmClient ports.LLMClient, model string, maxTokens int, logger *zap.Logger) *Renderer {
	return &Renderer{
		templateEngine: engine,
		llmClient:      llmClient,
		model:          model,
		maxTokens:      maxTokens,
		logger:         logger,
	}
}

// Render renders req against the stored execution state
func (r *Renderer) Render(ctx context.Context, req *Request, stored map[string]interface{}) (*Result, error) {
	if err := r.validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	r.logger.Info("render request",
		zap.String("mode", string(req.Mode)),
		zap.Int("template_bytes", len(req.Template)),
	)

	var result *Result
	var err error

	switch req.Mode {
	case ModeTemplate:
		result, err = r.renderTemplate(req, stored)
	case ModeLLM:
		result, err = r.renderLLM(ctx, req, stored)
	}

	if err != nil {
		r.logger.Error("render failed",
			zap.String("mode", string(req.Mode)),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Info("render completed",
		zap.String("mode", result.Mode),
		zap.Int("output_bytes", len(result.Output)),
	)

	return result, nil
}

// renderTemplate renders the template without calling the LLM
func (r *Renderer) renderTemplate(req *Request, stored map[string]interface{}) (*Result, error) {
	output, err := r.templateEngine.Render(req.Template, buildContext(stored, req.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &Result{
		Output: output,
		Mode:   string(ModeTemplate),
	}, nil
}

// buildContext merges the stored state and the inline data into the template context
func buildContext(stored, data map[string]interface{}) map[string]interface{} {
	ctx := make(map[string]interface{}, len(stored)+len(data)+1)

	// Flatten stored state for easier access
	for key, value := range stored {
		ctx[key] = value
	}
	for key, value := range data {
		ctx[key] = value
	}

	if stored == nil {
		stored = map[string]interface{}{}
	}
	ctx["state"] = stored

	return ctx
}

// validateRequest validates the request and defaults its mode
func (r *Renderer) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}

	if req.Template == "" {
		return fmt.Errorf("template is required")
	}

	if req.Mode == "" {
		req.Mode = ModeTemplate
	}

	switch req.Mode {
	case ModeTemplate:
	case ModeLLM:
		if req.MaxTokens < 0 {
			return fmt.Errorf("max_tokens must be non-negative")
		}
	default:
		return fmt.Errorf("unknown render mode: %s", req.Mode)
	}

	if err := r.templateEngine.ValidateTemplate(req.Template); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	return nil
}

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/aescanero/dago-libs/pkg/domain"
	"go.uber.org/zap"
)

// renderLLM renders the prompt and returns the LLM completion
func (r *Renderer) renderLLM(ctx context.Context, req *Request, stored map[string]interface{}) (*Result, error) {
	if r.llmClient == nil {
		return nil, fmt.Errorf("llm client not configured")
	}

	// Render prompt template
	prompt, err := r.templateEngine.Render(req.Template, buildContext(stored, req.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	model := req.Model
	if model == "" {
		model = r.model
	}

	r.logger.Debug("calling llm",
		zap.String("model", model),
		zap.String("prompt", prompt),
	)

	// Call LLM
	response, err := r.callLLM(ctx, model, r.tokens(req), req.System, prompt)
	if err != nil {
		r.logger.Error("llm call failed",
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Debug("llm response received",
		zap.String("response", response),
	)

	return &Result{
		Output: strings.TrimSpace(response),
		Prompt: prompt,
		Mode:   string(ModeLLM),
		Model:  model,
	}, nil
}

func (r *Renderer) tokens(req *Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if r.maxTokens > 0 {
		return r.maxTokens
	}
	return 1024
}

// callLLM calls the LLM with the given prompt
func (r *Renderer) callLLM(ctx context.Context, model string, maxTokens int, system, prompt string) (string, error) {
	messages := make([]domain.Message, 0, 2)
	if system != "" {
		messages = append(messages, domain.Message{
			Role:    "system",
			Content: system,
		})
	}
	messages = append(messages, domain.Message{
		Role:    "user",
		Content: prompt,
	})

	// Use GenerateCompletion for compatibility with domain types
	req := &domain.LLMRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	respInterface, err := r.llmClient.GenerateCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm completion failed: %w", err)
	}

	// Type assert response
	resp, ok := respInterface.(*domain.LLMResponse)
	if !ok {
		return "", fmt.Errorf("unexpected response type from LLM")
	}

	return resp.Content, nil
}

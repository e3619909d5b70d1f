package runner

import (
	"fmt"

	"gatelab/pkg/domain"
)

// Validator checks experiment request tables before dispatch. The tables are
// built from fixed data, so a failure here is a programming defect rather
// than a runtime condition.
type Validator struct{}

// NewValidator creates a new experiment plan validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePlan validates an experiment's request table
func (v *Validator) ValidatePlan(name string, reqs []domain.Request) error {
	if name == "" {
		return fmt.Errorf("experiment name is required")
	}
	if len(reqs) == 0 {
		return fmt.Errorf("experiment %s has no requests", name)
	}

	ids := make(map[string]bool, len(reqs))
	for i, req := range reqs {
		if err := v.validateRequest(req); err != nil {
			return fmt.Errorf("experiment %s request %d: %w", name, i, err)
		}
		if ids[req.ID] {
			return fmt.Errorf("experiment %s: duplicate request ID %s", name, req.ID)
		}
		ids[req.ID] = true
	}

	return nil
}

// validateRequest checks one request's fixed fields. Prompt text is not
// checked: empty and degenerate prompts are legitimate experiment inputs.
func (v *Validator) validateRequest(req domain.Request) error {
	if req.ID == "" {
		return fmt.Errorf("request ID is required")
	}
	if req.Model == "" {
		return fmt.Errorf("model identifier is required")
	}
	if req.Temperature < 0 || req.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", req.Temperature)
	}
	if req.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", req.MaxTokens)
	}
	return nil
}

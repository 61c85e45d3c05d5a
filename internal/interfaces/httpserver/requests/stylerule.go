package requests

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/domain/stylerule"
)

// StyleRuleRequest is the body of a v3 style rule create.
type StyleRuleRequest struct {
	Name               string                        `json:"name"`
	Language           string                        `json:"language"`
	ConfiguredRules    stylerule.ConfiguredRules     `json:"configured_rules"`
	CustomInstructions []stylerule.CustomInstruction `json:"custom_instructions"`
}

// Input converts the request to its domain form.
func (r StyleRuleRequest) Input() stylerule.CreateInput {
	return stylerule.CreateInput{
		Name:               r.Name,
		Language:           r.Language,
		ConfiguredRules:    r.ConfiguredRules,
		CustomInstructions: r.CustomInstructions,
	}
}

// BindStyleRule reads a style rule body. Nested rules and instructions
// are only accepted in JSON bodies.
func BindStyleRule(c *gin.Context) (StyleRuleRequest, error) {
	values, err := Parse(c)
	if err != nil {
		return StyleRuleRequest{}, err
	}

	req := StyleRuleRequest{Name: values.Get("name"), Language: values.Get("language")}
	raw, ok := c.Get(jsonBodyKey)
	if !ok {
		return req, nil
	}
	body := raw.(map[string]json.RawMessage)
	if rules, ok := body["configured_rules"]; ok {
		if err := json.Unmarshal(rules, &req.ConfiguredRules); err != nil {
			return req, fmt.Errorf("decode configured_rules: %w", err)
		}
	}
	if instructions, ok := body["custom_instructions"]; ok {
		if err := json.Unmarshal(instructions, &req.CustomInstructions); err != nil {
			return req, fmt.Errorf("decode custom_instructions: %w", err)
		}
	}
	return req, nil
}

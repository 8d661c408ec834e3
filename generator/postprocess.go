package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParsePlan validates and decodes the planning model's raw JSON.
func ParsePlan(raw string) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &plan); err != nil {
		return Plan{}, fmt.Errorf("planning response is not valid JSON: %w", err)
	}
	if strings.TrimSpace(plan.Skeleton) == "" {
		return Plan{}, errors.New("planning response has an empty skeleton")
	}
	if len(plan.Prompts) == 0 {
		return Plan{}, errors.New("planning response has no section prompts")
	}
	for i, p := range plan.Prompts {
		if strings.TrimSpace(p.SectionName) == "" {
			return Plan{}, fmt.Errorf("section prompt %d has an empty section_name", i)
		}
		if strings.TrimSpace(p.Prompt) == "" {
			return Plan{}, fmt.Errorf("section prompt %q has empty instructions", p.SectionName)
		}
	}
	return plan, nil
}

// ParseSectionResult validates and decodes one worker's raw JSON, stamping
// it with the section name it was dispatched for.
func ParseSectionResult(raw, sectionName string) (SectionResult, error) {
	var res SectionResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &res); err != nil {
		return SectionResult{}, fmt.Errorf("section %q response is not valid JSON: %w", sectionName, err)
	}
	if strings.TrimSpace(res.HTML) == "" {
		return SectionResult{}, fmt.Errorf("section %q response has no html_code", sectionName)
	}
	res.SectionName = sectionName
	return res, nil
}

// PlaceholderResult stands in for a section whose worker call failed, so
// the rest of the page still assembles.
func PlaceholderResult(sectionName string, err error) SectionResult {
	return SectionResult{
		SectionName: sectionName,
		HTML:        fmt.Sprintf("<div><!-- section %s could not be generated --></div>", sectionName),
		Failed:      true,
		Err:         err.Error(),
	}
}

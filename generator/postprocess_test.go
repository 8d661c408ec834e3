package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionResult(t *testing.T) {
	raw := `{"html_code":"<p>hi</p>","css_code":"p{color:red}","js_code":"","image_prompts":[{"prompt":"a cat","filename":"cat.png"}]}`
	res, err := ParseSectionResult(raw, "hero")
	require.NoError(t, err)
	assert.Equal(t, "hero", res.SectionName)
	assert.Equal(t, "<p>hi</p>", res.HTML)
	assert.Equal(t, "p{color:red}", res.CSS)
	assert.Empty(t, res.JS)
	require.Len(t, res.ImagePrompts, 1)
	assert.Equal(t, "cat.png", res.ImagePrompts[0].Filename)
}

func TestParseSectionResultRejectsEmptyHTML(t *testing.T) {
	_, err := ParseSectionResult(`{"html_code":"  "}`, "hero")
	assert.ErrorContains(t, err, "hero")
}

func TestPlaceholderResultNamesSection(t *testing.T) {
	res := PlaceholderResult("hero", errors.New("boom"))
	assert.True(t, res.Failed)
	assert.Equal(t, "boom", res.Err)
	assert.Contains(t, res.HTML, "hero")
}

func TestMockLLMSpeaksBothSchemas(t *testing.T) {
	raw, err := MockLLM{}.Complete(context.Background(), BuildPlanPrompt("a page"))
	require.NoError(t, err)
	plan, err := ParsePlan(raw)
	require.NoError(t, err)
	require.NoError(t, ValidatePlan(plan))

	raw, err = MockLLM{}.Complete(context.Background(), BuildSectionPrompt(plan.Prompts[0], plan.SharedContext, plan.ThemeContext))
	require.NoError(t, err)
	_, err = ParseSectionResult(raw, plan.Prompts[0].SectionName)
	require.NoError(t, err)
}

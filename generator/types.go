package generator

// SectionPrompt is one planned section: the element id it will replace in
// the skeleton plus the instructions handed to the worker that generates it.
type SectionPrompt struct {
	SectionName string `json:"section_name"`
	Prompt      string `json:"prompt"`
}

// Plan is the planning model's decomposition of the page.
// theme_context carries colours/fonts/sizing, shared_context carries the
// narrative facts every worker needs; both exist so sections stay consistent
// without talking to each other.
type Plan struct {
	ThemeContext  string          `json:"theme_context"`
	SharedContext string          `json:"shared_context"`
	Prompts       []SectionPrompt `json:"prompts"`
	Skeleton      string          `json:"skeleton"`
}

// ImagePrompt is a single image a section asked for. Filename must be a
// bare file name; the publisher rejects anything path-like.
type ImagePrompt struct {
	Prompt   string `json:"prompt"`
	Filename string `json:"filename"`
}

// SectionResult is one worker's output. CSS and JS are tag-free fragments;
// empty means the section contributed nothing to the aggregated blocks.
type SectionResult struct {
	SectionName  string        `json:"-"`
	HTML         string        `json:"html_code"`
	CSS          string        `json:"css_code"`
	JS           string        `json:"js_code"`
	ImagePrompts []ImagePrompt `json:"image_prompts"`

	// Failed marks a section whose worker call errored; HTML then holds the
	// placeholder fragment and Err the cause.
	Failed bool   `json:"-"`
	Err    string `json:"-"`
}

package generator

import (
	"fmt"
	"strings"
)

const tailwindTag = `<script src="https://unpkg.com/@tailwindcss/browser@4"></script>`

// planSchema mirrors Plan. additionalProperties is off and every field is
// required, as strict response formats demand.
var planSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"theme_context", "shared_context", "prompts", "skeleton"},
	"properties": map[string]any{
		"theme_context":  map[string]any{"type": "string"},
		"shared_context": map[string]any{"type": "string"},
		"skeleton":       map[string]any{"type": "string"},
		"prompts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"section_name", "prompt"},
				"properties": map[string]any{
					"section_name": map[string]any{"type": "string"},
					"prompt":       map[string]any{"type": "string"},
				},
			},
		},
	},
}

// sectionSchema mirrors SectionResult's wire shape.
var sectionSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"html_code", "css_code", "js_code", "image_prompts"},
	"properties": map[string]any{
		"html_code": map[string]any{"type": "string"},
		"css_code":  map[string]any{"type": "string"},
		"js_code":   map[string]any{"type": "string"},
		"image_prompts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"prompt", "filename"},
				"properties": map[string]any{
					"prompt":   map[string]any{"type": "string"},
					"filename": map[string]any{"type": "string"},
				},
			},
		},
	},
}

// BuildPlanPrompt produces the single planning request. The constraints
// keep the skeleton structure-only and force all reusable facts into the
// shared/theme contexts, which is what keeps fully parallel section workers
// stylistically consistent.
func BuildPlanPrompt(userRequest string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This is the prompt of the user: %s\n", userRequest))
	sb.WriteString("The user wants to create a landing page.\n")
	sb.WriteString("The landing page should be as big and useful as it can be.\n")
	sb.WriteString("Create a plan of action which multiple LLMs will follow to build the website.\n")
	sb.WriteString("The plan of action should be the different sections on the landing page.\n")
	sb.WriteString("The plan of action must contain prompts which will be given to the website generation model.\n")
	sb.WriteString("Also, supply the HTML code containing the basic structure of the website, including the sections with their ID as the section name.\n")
	sb.WriteString("DO NOT ADD ANY CODE EXCEPT BOILERPLATE/SKELETON CODE.\n")
	sb.WriteString("Make sure you set the margins and padding to the body correctly.\n")
	sb.WriteString("The prompt should be detailed.\n")
	sb.WriteString("Use Tailwind for styling.\n")
	sb.WriteString("This is the tag for TailwindCSS: " + tailwindTag + "\n")
	sb.WriteString("Include the Tailwind import tag in the skeleton.\n")
	sb.WriteString("Put all repetitive information into the shared context.\n")
	sb.WriteString("Add website style, colours, font theming, font colours, etc in the theme context.\n")
	sb.WriteString("For images, describe them in image prompts and reference them by filename.\n")
	sb.WriteString("Set a font if needed.\n")
	sb.WriteString("Share key details like font, colour scheme, sizing values and ratios in the context.\n")

	return Prompt{
		System:     "You are the orchestrator planning a website build. Respond with JSON only.",
		User:       sb.String(),
		SchemaName: "planning_response",
		Schema:     planSchema,
	}
}

// BuildSectionPrompt produces one worker request. Besides its own
// instructions the worker only ever sees the two shared context strings;
// there is no inter-worker communication.
func BuildSectionPrompt(p SectionPrompt, sharedContext, themeContext string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This is context about the website you are building: %s\n", sharedContext))
	sb.WriteString(fmt.Sprintf("This is the theming of the website: %s\n", themeContext))
	sb.WriteString(fmt.Sprintf("Generate HTML Code for this prompt: %s\n", p.Prompt))
	sb.WriteString("You are a worker being orchestrated by a master LLM.\n")
	sb.WriteString("You have been assigned only this section.\n")
	sb.WriteString("Only generate this section, nothing else.\n")
	sb.WriteString("Use Tailwind CSS for styling.\n")
	sb.WriteString("For any image, emit an image prompt with a simple .png filename and use that filename in the markup.\n")
	sb.WriteString("Make the design look modern and futuristic.\n")
	sb.WriteString("Include Custom JS and CSS for that section if needed.\n")
	sb.WriteString("Add interactivity in the elements if needed.\n")
	sb.WriteString("Also include any custom font.\n")

	return Prompt{
		System:     "You generate one HTML section. Respond with JSON only.",
		User:       sb.String(),
		SchemaName: "worker_response",
		Schema:     sectionSchema,
	}
}

// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// # Gemini Provider

// GeminiLookup implements [Lookup] against the Google Gemini API.
type GeminiLookup struct {
	apiKey string
	model  string
}

// NewGeminiLookup constructs a Gemini-backed metadata provider.
func NewGeminiLookup(apiKey, model string) *GeminiLookup {
	return &GeminiLookup{apiKey: apiKey, model: model}
}

// geminiDetails mirrors the JSON shape the model is constrained to emit.
type geminiDetails struct {
	TotalPages  float64 `json:"totalPages"`
	Description string  `json:"description"`
}

/*
BookDetails asks Gemini for the page/chapter count and a short description.

Description: The model is constrained to a strict JSON object response via a
response schema, so a well-behaved reply parses directly. Anything else is an
error for the service layer to absorb.

Parameters:
  - context: context.Context
  - title: string
  - author: string

Returns:
  - *Suggestion: The parsed suggestion
  - error: Client construction, generation, or response-shape failures
*/
func (lookup *GeminiLookup) BookDetails(context context.Context, title, author string) (*Suggestion, error) {
	client, err := genai.NewClient(context, option.WithAPIKey(lookup.apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(lookup.model)

	// Constrain the response to a machine-parseable JSON object.
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"totalPages":  {Type: genai.TypeNumber},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"totalPages", "description"},
	}

	prompt := fmt.Sprintf(
		`Provide details for the book or comic titled %q by %q. `+
			`I need the total number of pages (or chapters if it's a comic) `+
			`and a very short 1-sentence description.`,
		title, author,
	)

	response, err := model.GenerateContent(context, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to generate content: %w", err)
	}

	if len(response.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}

	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: empty content returned")
	}

	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("gemini: unexpected response part type")
	}

	var details geminiDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response JSON: %w", err)
	}

	suggestion := &Suggestion{Description: details.Description}
	if details.TotalPages > 0 {
		pages := int(details.TotalPages)
		suggestion.TotalPages = &pages
	}

	return suggestion, nil
}

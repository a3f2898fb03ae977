package interview

import "lurnix/internal/llm"

// QuestionSetSchema defines the JSON schema for LLM interview question
// generation responses.
var QuestionSetSchema = &llm.Schema{
	Name:        "interview-question-set",
	Description: "A set of spoken interview questions with model sample answers",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The interview question, phrased to be read aloud to the candidate",
				},
				"sampleAnswer": map[string]any{
					"type":        "string",
					"description": "A strong model answer the candidate's response is reviewed against",
				},
				"topicArea": map[string]any{
					"type":        "string",
					"description": "The sub-topic the question covers, e.g. Architecture or Fundamentals",
				},
				"difficulty": map[string]any{
					"type":        "string",
					"enum":        []any{"easy", "medium", "hard"},
					"description": "The difficulty tier the question was generated for",
				},
			},
			"required":             []any{"question", "sampleAnswer", "topicArea", "difficulty"},
			"additionalProperties": false,
		},
		"minItems": 1,
	},
}

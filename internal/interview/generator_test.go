package interview

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"lurnix/internal/llm"
)

const lessonHTML = `<h1>Attention</h1><p>The attention mechanism lets a transformer weigh every token
against every other token, so context flows across the whole sequence instead of a fixed window.
Multi-head attention runs several of these weightings in parallel.</p>`

func testOpts() Options {
	return Options{
		Topic:        "generative-ai",
		Domain:       "engineering-student",
		Hobby:        "movies",
		Difficulty:   DifficultyMedium,
		NumQuestions: 3,
	}
}

func questionJSON(n int) string {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Question:     "According to the lesson, what does attention compute?",
			SampleAnswer: "It weighs tokens against each other.",
			TopicArea:    "Attention",
			Difficulty:   DifficultyMedium,
		}
	}
	data, _ := json.Marshal(qs)
	return string(data)
}

func TestGenerate_ParsesProseWrappedArray(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Here are your questions:\n```json\n" + questionJSON(3) + "\n```\nGood luck!"),
	})
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Fallback {
		t.Fatalf("unexpected fallback: %s", res.Notice)
	}
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(res.Questions))
	}
}

func TestGenerate_ContentGoesIntoPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(questionJSON(3)),
	})
	g := NewGenerator(mock, nil)

	if _, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "attention mechanism") {
		t.Fatal("cleaned lesson content missing from prompt")
	}
	if strings.Contains(prompt, "<h1>") {
		t.Fatal("raw HTML leaked into prompt")
	}
	if !strings.Contains(prompt, "Engineering Student") {
		t.Fatal("domain persona missing from prompt")
	}
}

func TestGenerate_RequestsStructuredOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(questionJSON(3)),
	})
	g := NewGenerator(mock, nil)

	if _, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	schema := mock.Calls[0].Schema
	if schema == nil {
		t.Fatal("request must carry the question-set schema")
	}
	if schema.Name != "interview-question-set" {
		t.Fatalf("schema name = %q", schema.Name)
	}
	if schema.Definition["type"] != "array" {
		t.Fatalf("schema root type = %v, want array", schema.Definition["type"])
	}
}

func TestGenerate_NoContentUsesTopicPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(questionJSON(3)),
	})
	g := NewGenerator(mock, nil)

	if _, err := g.Generate(context.Background(), testOpts(), "Intro", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "about generative-ai") {
		t.Fatalf("topic prompt not used:\n%s", prompt)
	}
}

func TestGenerate_ShortContentSkipsLLM(t *testing.T) {
	mock := llm.NewMockProvider()
	g := NewGenerator(mock, nil)

	// Cleans to between 50 and 100 characters: present but unusable.
	short := "<p>" + strings.Repeat("ab ", 25) + "</p>"

	res, err := g.Generate(context.Background(), testOpts(), "Stub", short)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Fallback {
		t.Fatal("expected fallback for short content")
	}
	if mock.CallCount() != 0 {
		t.Fatalf("LLM should not be called, got %d calls", mock.CallCount())
	}
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(res.Questions))
	}
}

func TestGenerate_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate must not surface provider errors: %v", err)
	}
	if !res.Fallback {
		t.Fatal("expected fallback after provider error")
	}
	if res.Notice == "" {
		t.Fatal("fallback must carry a notice")
	}
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(res.Questions))
	}
}

func TestGenerate_UnparseableResponseFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"I cannot help with that."`),
	})
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Fallback {
		t.Fatal("expected fallback for unparseable response")
	}
}

func TestGenerate_NilProviderFallsBack(t *testing.T) {
	g := NewGenerator(nil, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Fallback || len(res.Questions) != 3 {
		t.Fatalf("expected 3 bank questions, got %d (fallback=%v)", len(res.Questions), res.Fallback)
	}
}

func TestGenerate_TrimsExcessQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(questionJSON(7)),
	})
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(res.Questions))
	}
}

func TestGenerate_TopsUpShortSetFromBank(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(questionJSON(1)),
	})
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), testOpts(), "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Fallback {
		t.Fatal("a partial LLM set is not a full fallback")
	}
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(res.Questions))
	}
}

func TestGenerate_DefaultsMissingFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"question":"Q?","sampleAnswer":"A."},{"question":" ","sampleAnswer":"dropped"}]`),
	})
	opts := testOpts()
	opts.NumQuestions = 1
	g := NewGenerator(mock, nil)

	res, err := g.Generate(context.Background(), opts, "Attention", lessonHTML)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	q := res.Questions[0]
	if q.TopicArea != "generative-ai" || q.Difficulty != DifficultyMedium {
		t.Fatalf("defaults not applied: %+v", q)
	}
}

func TestGenerate_InvalidOptions(t *testing.T) {
	g := NewGenerator(nil, nil)
	_, err := g.Generate(context.Background(), Options{Difficulty: "impossible", NumQuestions: 3}, "", "")
	if err == nil {
		t.Fatal("expected error for invalid difficulty")
	}
}

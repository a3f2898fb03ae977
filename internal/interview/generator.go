package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lurnix/internal/llm"
)

// Generation defaults tuned for instruction-following question output.
const (
	genMaxTokens   = 4000
	genTemperature = 0.3
)

// Result is the outcome of one generation attempt. When the LLM path
// fails for any reason the interview still proceeds on bank questions,
// and Notice explains what happened.
type Result struct {
	Questions []Question
	Fallback  bool
	Notice    string
}

// Generator produces interview questions, preferring the LLM and
// falling back to the curated bank.
type Generator struct {
	provider llm.Provider
	log      *zap.Logger
	now      func() time.Time
}

// NewGenerator creates a Generator. provider may be nil, in which case
// every interview runs on bank questions.
func NewGenerator(provider llm.Provider, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		provider: provider,
		log:      log,
		now:      time.Now,
	}
}

// Generate builds the question set for one interview. assetContent is
// the raw lesson HTML; when it cleans down to something substantial the
// questions are grounded in it, otherwise they cover the topic broadly.
func (g *Generator) Generate(ctx context.Context, opts Options, assetTitle, assetContent string) (Result, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	cleaned := CleanContent(assetContent)
	hasContent := len(cleaned) > contentPresenceThreshold

	// An asset that claims content but cleans down to almost nothing
	// produces vague questions; the bank does better.
	if hasContent && len(cleaned) < minUsableContent {
		return g.fallback(opts, "lesson content too short for content-based questions"), nil
	}

	if g.provider == nil {
		return g.fallback(opts, "no LLM provider configured"), nil
	}

	var prompt string
	if hasContent {
		prompt = buildContentPrompt(opts, assetTitle, cleaned, g.now())
	} else {
		prompt = buildTopicPrompt(opts, g.now())
	}

	ctx = llm.WithPurpose(ctx, "interview-questions")
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   genMaxTokens,
		Temperature: genTemperature,
		Schema:      QuestionSetSchema,
	})
	if err != nil {
		g.log.Warn("interview generation failed, using question bank", zap.Error(err))
		return g.fallback(opts, "AI generation failed, using curated questions"), nil
	}

	questions, err := parseQuestions(resp.Content)
	if err != nil {
		g.log.Warn("interview response unparseable, using question bank", zap.Error(err))
		return g.fallback(opts, "AI response could not be parsed, using curated questions"), nil
	}

	questions = normalizeQuestions(questions, opts)
	if len(questions) == 0 {
		return g.fallback(opts, "AI returned no usable questions, using curated questions"), nil
	}

	// The interview always runs the requested length: trim extras, top
	// up a short set from the bank.
	if len(questions) > opts.NumQuestions {
		questions = questions[:opts.NumQuestions]
	}
	if len(questions) < opts.NumQuestions {
		filler := FallbackQuestions(opts)
		if len(filler) > len(questions) {
			questions = append(questions, filler[len(questions):]...)
		}
	}

	return Result{Questions: questions}, nil
}

func (g *Generator) fallback(opts Options, notice string) Result {
	return Result{
		Questions: FallbackQuestions(opts),
		Fallback:  true,
		Notice:    notice,
	}
}

// parseQuestions extracts the JSON array from the model output. Models
// often wrap the array in prose or a code fence, so the parse spans the
// first opening bracket to the last closing one.
func parseQuestions(raw json.RawMessage) ([]Question, error) {
	text := string(raw)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var questions []Question
	if err := json.Unmarshal([]byte(text[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("decode question array: %w", err)
	}
	return questions, nil
}

// normalizeQuestions drops unusable entries and fills defaulted fields.
func normalizeQuestions(questions []Question, opts Options) []Question {
	out := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.SampleAnswer) == "" {
			continue
		}
		if q.TopicArea == "" {
			q.TopicArea = opts.Topic
		}
		if q.Difficulty == "" {
			q.Difficulty = opts.Difficulty
		}
		out = append(out, q)
	}
	return out
}

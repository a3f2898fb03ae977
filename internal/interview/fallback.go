package interview

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

const defaultTopic = "generative-ai"

type bankEntry struct {
	Question string `yaml:"question"`
	Area     string `yaml:"area"`
}

type questionBank struct {
	Topics map[string][]bankEntry `yaml:"topics"`
}

var (
	bankOnce sync.Once
	bank     questionBank
)

func loadBank() questionBank {
	bankOnce.Do(func() {
		if err := yaml.Unmarshal(bankYAML, &bank); err != nil {
			// The bank is embedded at build time; a parse failure is a
			// packaging bug, not a runtime condition.
			panic(fmt.Sprintf("parse embedded question bank: %v", err))
		}
	})
	return bank
}

// FallbackQuestions serves curated questions for the topic, with sample
// answers tailored to the candidate's domain and hobby. An unknown
// topic falls back to the generative-ai bank.
func FallbackQuestions(opts Options) []Question {
	opts.Normalize()

	b := loadBank()
	entries, ok := b.Topics[opts.Topic]
	if !ok {
		entries = b.Topics[defaultTopic]
	}

	// A short topic bank borrows from the default bank, then cycles, so
	// the result always holds exactly NumQuestions entries.
	if len(entries) < opts.NumQuestions {
		pool := append([]bankEntry{}, entries...)
		if opts.Topic != defaultTopic {
			pool = append(pool, b.Topics[defaultTopic]...)
		}
		filled := make([]bankEntry, 0, opts.NumQuestions)
		for i := 0; len(filled) < opts.NumQuestions; i++ {
			filled = append(filled, pool[i%len(pool)])
		}
		entries = filled
	} else {
		entries = entries[:opts.NumQuestions]
	}

	out := make([]Question, len(entries))
	for i, e := range entries {
		out[i] = Question{
			Question:     e.Question,
			SampleAnswer: contextualAnswer(e.Question, opts),
			TopicArea:    e.Area,
			Difficulty:   opts.Difficulty,
		}
	}
	return out
}

// contextualAnswer builds a sample answer for a bank question, weaving
// in the candidate's domain and hobby the way generated answers would.
func contextualAnswer(question string, opts Options) string {
	dom := domainPersona(opts.Domain)
	hobbyKeyword := hobbyPersona(opts.Hobby).Keywords[0]

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "generative ai"):
		return fmt.Sprintf("Generative AI is a subset of artificial intelligence that can create new content, including text, images, audio, and code. Unlike traditional AI that analyzes existing data, generative AI produces original outputs. For %s, this technology is revolutionizing how we approach problem-solving and content creation. Think of it like %s: just as %s involves creating something new from existing knowledge and skills, generative AI creates novel outputs by learning patterns from vast amounts of training data.",
			dom.Label, hobbyKeyword, hobbyKeyword)

	case strings.Contains(q, "transformer") || strings.Contains(q, "attention mechanism"):
		return fmt.Sprintf("Transformers are a type of neural network architecture that revolutionized natural language processing. The attention mechanism allows the model to focus on relevant parts of the input when generating output. For %s, understanding transformers is crucial for working with modern AI systems. This is similar to %s: it requires focusing attention on key elements to achieve the best results, and transformers use attention to focus on the most relevant information when processing language.",
			dom.Label, hobbyKeyword)

	case strings.Contains(q, "prompt engineering"):
		return fmt.Sprintf("Prompt engineering is the practice of crafting effective inputs to get desired outputs from AI models. It involves understanding how to structure questions and instructions to maximize the quality and relevance of AI responses. For %s, this skill is essential for effectively using AI tools. Think of it like %s: it requires clear, strategic communication to achieve goals, and prompt engineering requires the same clarity when working with AI systems.",
			dom.Label, hobbyKeyword)

	case strings.Contains(q, "fine-tuning"):
		return fmt.Sprintf("Fine-tuning is the process of adapting a pre-trained AI model to perform specific tasks by training it on additional, task-specific data. This allows the model to maintain its general knowledge while becoming specialized for particular use cases. For %s, fine-tuning enables customization of AI models for specific applications. This approach is similar to %s: it builds on existing skills and adapts them to specific situations, just as fine-tuning builds on pre-trained knowledge.",
			dom.Label, hobbyKeyword)

	default:
		return fmt.Sprintf("This is a %s level question about %s. For %s, understanding this concept is crucial for working effectively with AI systems. The approach is similar to %s: it requires both theoretical knowledge and practical application to master these advanced technologies.",
			opts.Difficulty, opts.Topic, dom.Label, hobbyKeyword)
	}
}

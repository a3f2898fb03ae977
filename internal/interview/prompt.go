package interview

import (
	"fmt"
	"strings"
	"time"
)

// persona describes one domain or hobby option: the label shown to the
// LLM and the keywords that anchor its analogies.
type persona struct {
	Label    string
	Keywords []string
}

var domains = map[string]persona{
	"engineering-student": {
		Label:    "Engineering Student",
		Keywords: []string{"circuits", "code snippets", "algorithms", "systems", "programming"},
	},
	"medical-student": {
		Label:    "Medical Student",
		Keywords: []string{"case studies", "healthcare", "diagnosis", "treatment", "anatomy"},
	},
	"business-student": {
		Label:    "Business Student",
		Keywords: []string{"marketing", "finance", "strategy", "management", "economics"},
	},
	"teacher-trainer": {
		Label:    "Teacher / Trainer",
		Keywords: []string{"classroom", "pedagogy", "curriculum", "assessment", "learning"},
	},
	"working-professional": {
		Label:    "Working Professional",
		Keywords: []string{"workplace", "project management", "leadership", "productivity", "career"},
	},
}

var hobbies = map[string]persona{
	"cricket": {
		Label:    "Cricket",
		Keywords: []string{"team strategy", "performance", "coaching", "statistics"},
	},
	"movies": {
		Label:    "Movie Buff",
		Keywords: []string{"storytelling", "character development", "plot", "direction"},
	},
	"gaming": {
		Label:    "Gamer",
		Keywords: []string{"strategy", "problem solving", "levels", "achievements"},
	},
	"music": {
		Label:    "Music Lover",
		Keywords: []string{"rhythm", "harmony", "composition", "performance"},
	},
	"cooking": {
		Label:    "Chef",
		Keywords: []string{"recipe", "ingredients", "technique", "presentation"},
	},
}

func domainPersona(id string) persona {
	if p, ok := domains[id]; ok {
		return p
	}
	return persona{Label: id, Keywords: []string{"general knowledge"}}
}

func hobbyPersona(id string) persona {
	if p, ok := hobbies[id]; ok {
		return p
	}
	return persona{Label: id, Keywords: []string{"general interests"}}
}

// buildContentPrompt asks for questions grounded strictly in the
// provided lesson content.
func buildContentPrompt(opts Options, assetTitle, cleanContent string, now time.Time) string {
	dom := domainPersona(opts.Domain)
	hob := hobbyPersona(opts.Hobby)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert technical interviewer. You MUST generate %d %s level interview questions STRICTLY based on the learning content provided below. DO NOT generate generic questions.\n\n",
		opts.NumQuestions, opts.Difficulty)

	b.WriteString("===== LEARNING CONTENT TO BASE QUESTIONS ON =====\n")
	fmt.Fprintf(&b, "Title: %q\n\n", assetTitle)
	fmt.Fprintf(&b, "Content: %q\n", cleanContent)
	b.WriteString("===== END OF LEARNING CONTENT =====\n\n")

	writeContext(&b, opts, dom, hob, now)

	b.WriteString(`CRITICAL INSTRUCTIONS:
1. READ the learning content above carefully
2. Generate questions ONLY about concepts, terms, examples, and topics mentioned in that specific content
3. DO NOT ask generic questions about the subject area
4. Each question MUST reference something specific from the provided content
5. Test understanding of the exact material provided

For each question, provide:
1. A specific interview question that directly tests knowledge from the learning content above
2. A sample answer that uses information from the content and incorporates domain/hobby analogies

`)
	writeFormat(&b, opts.Difficulty)
	fmt.Fprintf(&b, "\nGenerate %d questions NOW that are SPECIFICALLY about the content provided above:", opts.NumQuestions)
	return b.String()
}

// buildTopicPrompt asks for questions about the topic alone, used when
// no usable lesson content exists.
func buildTopicPrompt(opts Options, now time.Time) string {
	dom := domainPersona(opts.Domain)
	hob := hobbyPersona(opts.Hobby)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert technical interviewer. Generate %d %s level interview questions about %s.\n\n",
		opts.NumQuestions, opts.Difficulty, opts.Topic)

	writeContext(&b, opts, dom, hob, now)

	b.WriteString(`For each question, provide:
1. A clear, specific interview question
2. A detailed sample answer that incorporates analogies or examples from the candidate's domain and hobby when appropriate

`)
	writeFormat(&b, opts.Difficulty)
	fmt.Fprintf(&b, "\nMake the questions progressively challenging and cover different aspects of %s.\n", opts.Topic)
	b.WriteString("Include practical scenarios and real-world applications.\n")
	fmt.Fprintf(&b, "When possible, use analogies from %s or examples relevant to %s.\n\n", hob.Label, dom.Label)
	fmt.Fprintf(&b, "Generate %d questions now:", opts.NumQuestions)
	return b.String()
}

func writeContext(b *strings.Builder, opts Options, dom, hob persona, now time.Time) {
	b.WriteString("Context:\n")
	fmt.Fprintf(b, "- Current Time: %s\n", now.Format("Monday, January 2, 2006, 03:04 PM MST"))
	fmt.Fprintf(b, "- Candidate Domain: %s (Keywords: %s)\n", dom.Label, strings.Join(dom.Keywords, ", "))
	fmt.Fprintf(b, "- Candidate Hobby: %s (Keywords: %s)\n", hob.Label, strings.Join(hob.Keywords, ", "))
	if opts.CustomContext != "" {
		fmt.Fprintf(b, "- Additional Context: %s\n", opts.CustomContext)
	}
	b.WriteString("\n")
}

func writeFormat(b *strings.Builder, difficulty string) {
	fmt.Fprintf(b, `Format your response as a JSON array where each object has:
{
  "question": "The interview question",
  "sampleAnswer": "Detailed answer with domain/hobby context when relevant",
  "topicArea": "Specific area this question covers",
  "difficulty": %q
}
`, difficulty)
}

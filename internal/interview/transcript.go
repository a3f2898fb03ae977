package interview

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const noAnswer = "No answer provided"

// Transcript is the exportable record of a completed interview.
type Transcript struct {
	ID            string            `json:"id"`
	ExportedAt    time.Time         `json:"exportedAt"`
	Topic         string            `json:"topic"`
	Domain        string            `json:"domain"`
	Hobby         string            `json:"hobby"`
	Difficulty    string            `json:"difficulty"`
	Duration      string            `json:"duration"`
	InterviewType string            `json:"interviewType"`
	Note          string            `json:"note"`
	Questions     []TranscriptEntry `json:"questions"`
}

// TranscriptEntry pairs one question with the candidate's answer and
// the model answer.
type TranscriptEntry struct {
	QuestionNumber int    `json:"questionNumber"`
	Question       string `json:"question"`
	UserAnswer     string `json:"userAnswer"`
	SampleAnswer   string `json:"aiSampleAnswer"`
	TopicArea      string `json:"topicArea"`
}

// BuildTranscript assembles a Transcript from a completed session.
func BuildTranscript(opts Options, s *Session) Transcript {
	entries := make([]TranscriptEntry, s.Total())
	for i, q := range s.Questions() {
		answer := s.Answer(i)
		if answer == "" {
			answer = noAnswer
		}
		entries[i] = TranscriptEntry{
			QuestionNumber: i + 1,
			Question:       q.Question,
			UserAnswer:     answer,
			SampleAnswer:   q.SampleAnswer,
			TopicArea:      q.TopicArea,
		}
	}

	return Transcript{
		ID:            uuid.NewString(),
		ExportedAt:    time.Now().UTC(),
		Topic:         opts.Topic,
		Domain:        opts.Domain,
		Hobby:         opts.Hobby,
		Difficulty:    opts.Difficulty,
		Duration:      FormatClock(s.Elapsed()),
		InterviewType: "Audio-Only AI Generated",
		Note:          "Questions were delivered via audio only for authentic interview experience",
		Questions:     entries,
	}
}

// Export writes the transcript as indented JSON under dir and returns
// the file path. dir is created if missing.
func (t Transcript) Export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := fmt.Sprintf("audio-interview-%s-%s.json", t.Topic, t.ExportedAt.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

package interview

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestBuildTranscript(t *testing.T) {
	s := NewSession([]Question{
		{Question: "Q1", SampleAnswer: "A1", TopicArea: "Fundamentals", Difficulty: DifficultyMedium},
		{Question: "Q2", SampleAnswer: "A2", TopicArea: "Architecture", Difficulty: DifficultyMedium},
	})
	s.Next("my answer")
	s.Next("")

	tr := BuildTranscript(testOpts(), s)

	if tr.ID == "" {
		t.Fatal("transcript must carry an id")
	}
	if tr.Topic != "generative-ai" || tr.Difficulty != DifficultyMedium {
		t.Fatalf("setup fields wrong: %+v", tr)
	}
	if len(tr.Questions) != 2 {
		t.Fatalf("got %d entries, want 2", len(tr.Questions))
	}
	if tr.Questions[0].UserAnswer != "my answer" {
		t.Fatalf("answer lost: %q", tr.Questions[0].UserAnswer)
	}
	if tr.Questions[1].UserAnswer != noAnswer {
		t.Fatalf("skipped question should read %q, got %q", noAnswer, tr.Questions[1].UserAnswer)
	}
	if tr.Questions[1].QuestionNumber != 2 {
		t.Fatalf("question numbering is 1-based, got %d", tr.Questions[1].QuestionNumber)
	}
}

func TestTranscript_Export(t *testing.T) {
	dir := t.TempDir()

	s := NewSession(sessionQuestions(1))
	s.Next("done")
	tr := BuildTranscript(testOpts(), s)

	path, err := tr.Export(dir)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(path, "audio-interview-generative-ai-") {
		t.Fatalf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var decoded Transcript
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.ID != tr.ID || len(decoded.Questions) != 1 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestTranscript_ExportCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/exports"

	s := NewSession(sessionQuestions(1))
	s.Next("done")
	if _, err := BuildTranscript(testOpts(), s).Export(dir); err != nil {
		t.Fatalf("Export into missing dir: %v", err)
	}
}

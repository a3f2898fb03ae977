package interview

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lurnix/internal/interview"
	"lurnix/internal/profile"
	"lurnix/internal/router"
	"lurnix/internal/speech"
)

// fakeSpeech records what was spoken.
type fakeSpeech struct {
	spoken []string
	voices []speech.Voice
	stops  int
}

func (f *fakeSpeech) Speak(text string, voice speech.Voice) error {
	f.spoken = append(f.spoken, text)
	f.voices = append(f.voices, voice)
	return nil
}
func (f *fakeSpeech) Stop()           { f.stops++ }
func (f *fakeSpeech) Available() bool { return true }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testScreen(t *testing.T) (*InterviewScreen, *fakeSpeech) {
	t.Helper()
	spk := &fakeSpeech{}
	deps := Deps{
		// A nil provider always serves bank questions, which keeps the
		// flow deterministic.
		Generator: interview.NewGenerator(nil, nil),
		Speech:    spk,
		Profile:   profile.Profile{Domain: "engineering-student", Hobbies: "cricket"},
		ExportDir: t.TempDir(),
	}
	return New(deps, "generative-ai", "What is Generative AI", ""), spk
}

// startInterview drives setup through generation into the active phase.
func startInterview(t *testing.T, s *InterviewScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	require.Equal(t, phaseGenerating, s.phase)

	msg := cmd()
	_, tickCmd := s.Update(msg)
	require.Equal(t, phaseActive, s.phase)
	require.NotNil(t, tickCmd)
}

func TestSetupDefaultsAndCycling(t *testing.T) {
	s, _ := testScreen(t)

	assert.Equal(t, interview.DifficultyMedium, difficulties[s.difficulty])
	assert.Equal(t, 5, interview.QuestionCounts[s.countIdx])
	assert.True(t, s.audio)

	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, interview.DifficultyHard, difficulties[s.difficulty])
	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, interview.DifficultyEasy, difficulties[s.difficulty])

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 7, interview.QuestionCounts[s.countIdx])

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyRight))
	assert.False(t, s.audio)
}

func TestStartSpeaksFirstQuestion(t *testing.T) {
	s, spk := testScreen(t)
	startInterview(t, s)

	require.Len(t, spk.spoken, 1)
	assert.Equal(t, s.session.Current().Question, spk.spoken[0])
	assert.Equal(t, speech.VoiceInterviewer, spk.voices[0])
	// Bank questions come with an explanatory notice.
	assert.NotEmpty(t, s.notice)
	assert.Equal(t, 5, s.session.Total())
}

func TestRepeatSpeaksSameQuestionAgain(t *testing.T) {
	s, spk := testScreen(t)
	startInterview(t, s)

	s.Update(ctrlKey('r'))
	s.Update(ctrlKey('r'))

	require.Len(t, spk.spoken, 3)
	assert.Equal(t, spk.spoken[0], spk.spoken[1])
	assert.Equal(t, spk.spoken[0], spk.spoken[2])
}

func TestSubmitAdvancesAndSpeaksNext(t *testing.T) {
	s, spk := testScreen(t)
	startInterview(t, s)
	first := s.session.Current().Question

	for _, r := range "attention" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, 1, s.session.Index())
	assert.Equal(t, "attention", s.session.Answer(0))
	assert.Empty(t, s.answer.Value())
	require.Len(t, spk.spoken, 2)
	assert.NotEqual(t, first, spk.spoken[1])
}

func TestCompletionAfterLastQuestion(t *testing.T) {
	s, _ := testScreen(t)
	startInterview(t, s)

	for q := 0; q < 5; q++ {
		s.Update(specialKey(tea.KeyEnter))
	}

	assert.Equal(t, phaseCompleted, s.phase)
	assert.Equal(t, interview.StateCompleted, s.session.State())
	assert.Empty(t, s.session.Answer(0))
}

func TestEscAtFirstQuestionExitsImmediately(t *testing.T) {
	s, spk := testScreen(t)
	startInterview(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, isPop := cmd().(router.PopScreenMsg)
	assert.True(t, isPop)
	assert.False(t, s.confirmingExit)
	assert.Equal(t, 1, spk.stops)
}

func TestEscWithProgressNeedsConfirmation(t *testing.T) {
	s, spk := testScreen(t)
	startInterview(t, s)
	s.Update(specialKey(tea.KeyEnter))

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd)
	require.True(t, s.confirmingExit)

	s.Update(keyPress('n'))
	assert.False(t, s.confirmingExit)
	assert.Equal(t, phaseActive, s.phase)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd = s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, isPop := cmd().(router.PopScreenMsg)
	assert.True(t, isPop)
	assert.GreaterOrEqual(t, spk.stops, 1)
}

func TestDownloadTranscriptWritesFile(t *testing.T) {
	s, _ := testScreen(t)
	startInterview(t, s)
	for q := 0; q < 5; q++ {
		s.Update(specialKey(tea.KeyEnter))
	}
	require.Equal(t, phaseCompleted, s.phase)

	_, cmd := s.Update(keyPress('d'))
	require.NotNil(t, cmd)
	msg := cmd()
	s.Update(msg)

	require.Empty(t, s.saveErr)
	require.NotEmpty(t, s.savedPath)
	assert.Equal(t, s.deps.ExportDir, filepath.Dir(s.savedPath))

	data, err := os.ReadFile(s.savedPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Audio-Only AI Generated")
}

func TestRestartReturnsToSetup(t *testing.T) {
	s, _ := testScreen(t)
	startInterview(t, s)
	for q := 0; q < 5; q++ {
		s.Update(specialKey(tea.KeyEnter))
	}

	s.Update(keyPress('r'))

	assert.Equal(t, phaseSetup, s.phase)
	assert.Nil(t, s.session)
	assert.Empty(t, s.notice)
}

func TestStaleGenerationResultIgnoredOutsideGenerating(t *testing.T) {
	s, _ := testScreen(t)

	s.Update(generatedMsg{result: interview.Result{Questions: []interview.Question{{Question: "late"}}}})

	assert.Equal(t, phaseSetup, s.phase)
	assert.Nil(t, s.session)
}

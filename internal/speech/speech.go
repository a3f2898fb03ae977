// Package speech provides text-to-speech for the mock interview screen.
// It shells out to the platform speech binary (say on macOS, espeak
// elsewhere) so the TUI itself stays free of audio dependencies.
package speech

import (
	"os/exec"
	"runtime"
)

// Voice selects the speaking voice for an utterance.
type Voice string

const (
	// VoiceInterviewer reads questions aloud.
	VoiceInterviewer Voice = "interviewer"
	// VoiceCandidate reads sample answers aloud.
	VoiceCandidate Voice = "candidate"
)

// Synthesizer speaks text aloud. Starting a new utterance cancels any
// utterance still in progress, so at most one plays at a time.
type Synthesizer interface {
	// Speak starts speaking text in the given voice. It returns once the
	// utterance has been started, not once it finishes. Speaking the same
	// text again restarts it from the beginning.
	Speak(text string, voice Voice) error

	// Stop cancels the current utterance, if any.
	Stop()

	// Available reports whether speech output can actually be produced.
	Available() bool
}

// New returns a Synthesizer backed by an external speech command, or a
// silent one when speech is disabled or no command can be found.
// command overrides binary discovery when non-empty.
func New(enabled bool, command string) Synthesizer {
	if !enabled {
		return Noop{}
	}

	bin := command
	if bin == "" {
		bin = discoverBinary()
	}
	if bin == "" {
		return Noop{}
	}

	return newExecEngine(bin)
}

// discoverBinary probes the PATH for a usable speech command.
func discoverBinary() string {
	candidates := []string{"espeak", "espeak-ng"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}

// Noop is a Synthesizer that produces no sound.
type Noop struct{}

func (Noop) Speak(string, Voice) error { return nil }
func (Noop) Stop()                     {}
func (Noop) Available() bool           { return false }

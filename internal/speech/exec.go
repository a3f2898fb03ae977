package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// runner starts a speech process and blocks until it exits or the
// context is canceled. Tests substitute their own implementation.
type runner func(ctx context.Context, bin string, args []string) error

// execEngine speaks by running an external command per utterance.
type execEngine struct {
	bin string
	run runner

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newExecEngine(bin string) *execEngine {
	return &execEngine{
		bin: bin,
		run: runCommand,
	}
}

func runCommand(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	return cmd.Run()
}

func (e *execEngine) Speak(text string, voice Voice) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("nothing to speak")
	}

	e.mu.Lock()
	// Cancel any utterance still playing before starting the next one.
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	args := e.voiceArgs(voice)
	args = append(args, text)

	go func() {
		defer cancel()
		// Exit status is ignored; a killed process is the normal
		// outcome when the user skips ahead.
		_ = e.run(ctx, e.bin, args)
	}()

	return nil
}

func (e *execEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *execEngine) Available() bool { return true }

// voiceArgs maps a Voice to command-line flags for the speech binary.
// The interviewer and candidate get distinct voices so playback of a
// question versus a sample answer is audibly different.
func (e *execEngine) voiceArgs(voice Voice) []string {
	say := strings.HasSuffix(e.bin, "say")
	switch voice {
	case VoiceCandidate:
		if say {
			return []string{"-v", "Daniel"}
		}
		return []string{"-v", "en+m3"}
	default:
		if say {
			return []string{"-v", "Samantha"}
		}
		return []string{"-v", "en+f3"}
	}
}

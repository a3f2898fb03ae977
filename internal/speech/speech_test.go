package speech

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeRunner records every invocation and blocks until its context is
// canceled, mimicking a long utterance.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
}

// record appends the call and returns its 1-based index, both under the
// same lock, so callers can identify which invocation they are without
// racing against later calls.
func (f *fakeRunner) record(bin string, args []string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{bin}, args...))
	return len(f.calls)
}

func (f *fakeRunner) run(ctx context.Context, bin string, args []string) error {
	f.record(bin, args)
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSpeak_StartsCommand(t *testing.T) {
	fake := &fakeRunner{}
	e := newExecEngine("/usr/bin/espeak")
	e.run = fake.run
	defer e.Stop()

	if err := e.Speak("What is a transformer?", VoiceInterviewer); err != nil {
		t.Fatalf("Speak: %v", err)
	}

	waitFor(t, func() bool { return fake.callCount() == 1 })

	call := fake.lastCall()
	if call[0] != "/usr/bin/espeak" {
		t.Fatalf("wrong binary: %q", call[0])
	}
	if call[len(call)-1] != "What is a transformer?" {
		t.Fatalf("text not passed: %v", call)
	}
}

func TestSpeak_CancelsPreviousUtterance(t *testing.T) {
	fake := &fakeRunner{}
	e := newExecEngine("/usr/bin/espeak")
	e.run = fake.run
	defer e.Stop()

	firstDone := make(chan struct{})
	e.run = func(ctx context.Context, bin string, args []string) error {
		idx := fake.record(bin, args)
		<-ctx.Done()
		if idx == 1 {
			close(firstDone)
		}
		return ctx.Err()
	}

	if err := e.Speak("first", VoiceInterviewer); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	waitFor(t, func() bool { return fake.callCount() == 1 })

	if err := e.Speak("second", VoiceInterviewer); err != nil {
		t.Fatalf("Speak: %v", err)
	}

	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first utterance was not canceled")
	}
	waitFor(t, func() bool { return fake.callCount() == 2 })
}

func TestSpeak_RepeatRestartsSameText(t *testing.T) {
	fake := &fakeRunner{}
	e := newExecEngine("/usr/bin/espeak")
	e.run = fake.run
	defer e.Stop()

	for range 2 {
		if err := e.Speak("repeat me", VoiceCandidate); err != nil {
			t.Fatalf("Speak: %v", err)
		}
	}
	waitFor(t, func() bool { return fake.callCount() == 2 })
}

func TestSpeak_RejectsEmptyText(t *testing.T) {
	e := newExecEngine("/usr/bin/espeak")
	if err := e.Speak("   ", VoiceInterviewer); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestVoiceArgs(t *testing.T) {
	espeak := newExecEngine("/usr/bin/espeak")
	if got := espeak.voiceArgs(VoiceInterviewer)[1]; got != "en+f3" {
		t.Fatalf("espeak interviewer voice: %q", got)
	}
	if got := espeak.voiceArgs(VoiceCandidate)[1]; got != "en+m3" {
		t.Fatalf("espeak candidate voice: %q", got)
	}

	say := newExecEngine("/usr/bin/say")
	if got := say.voiceArgs(VoiceInterviewer)[1]; got != "Samantha" {
		t.Fatalf("say interviewer voice: %q", got)
	}
	if got := say.voiceArgs(VoiceCandidate)[1]; got != "Daniel" {
		t.Fatalf("say candidate voice: %q", got)
	}
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	s := New(false, "")
	if s.Available() {
		t.Fatal("disabled synthesizer must not report available")
	}
	if err := s.Speak("anything", VoiceInterviewer); err != nil {
		t.Fatalf("noop Speak must not error: %v", err)
	}
}

func TestNew_ExplicitCommand(t *testing.T) {
	s := New(true, "/opt/tts/speak")
	if !s.Available() {
		t.Fatal("explicit command must be available")
	}
}

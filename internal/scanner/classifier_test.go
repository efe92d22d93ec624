package scanner

import (
	"sync"
	"testing"
	"time"
)

type submitRecorder struct {
	mu      sync.Mutex
	entries []struct {
		raw  string
		mode Mode
	}
}

func (r *submitRecorder) submit(raw string, mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, struct {
		raw  string
		mode Mode
	}{raw, mode})
}

func (r *submitRecorder) all() []struct {
	raw  string
	mode Mode
} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]struct {
		raw  string
		mode Mode
	}, len(r.entries))
	copy(out, r.entries)
	return out
}

const quiesce = 30 * time.Millisecond

func TestBurstAutoSubmits(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	// A reader wedge delivers several characters per event.
	c.Input("RFID")
	c.Input("RFID001")

	if c.Mode() != ModeReaderBurst {
		t.Fatalf("expected reader mode, got %v", c.Mode())
	}

	time.Sleep(quiesce * 4)

	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(got))
	}
	if got[0].raw != "RFID001" || got[0].mode != ModeReaderBurst {
		t.Errorf("unexpected submission: %+v", got[0])
	}
	if c.Mode() != ModeManual {
		t.Errorf("expected reset to manual after submit, got %v", c.Mode())
	}
}

func TestBurstTimerRestartsWhileActive(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Input("RF")
	time.Sleep(quiesce / 2)
	c.Input("RFID")
	time.Sleep(quiesce / 2)
	c.Input("RFID001")

	// Each burst event pushed the deadline out; nothing fired yet.
	if len(rec.all()) != 0 {
		t.Fatal("expected no submission while burst is still arriving")
	}

	time.Sleep(quiesce * 4)
	got := rec.all()
	if len(got) != 1 || got[0].raw != "RFID001" {
		t.Fatalf("expected one submission of the full buffer, got %+v", got)
	}
}

func TestManualTypingNeverAutoSubmits(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	for _, v := range []string{"R", "RF", "RFI", "RFID"} {
		c.Input(v)
	}

	if c.Mode() != ModeManual {
		t.Fatalf("expected manual mode, got %v", c.Mode())
	}

	time.Sleep(quiesce * 4)
	if len(rec.all()) != 0 {
		t.Fatal("expected no auto-submission for manual typing")
	}
}

func TestManualInputCancelsPendingBurst(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Input("RFID001")
	// A single-character correction before the deadline reverts to manual.
	c.Input("RFID0012")

	time.Sleep(quiesce * 4)
	if len(rec.all()) != 0 {
		t.Fatal("expected burst auto-submit to be cancelled by manual edit")
	}
	if c.Mode() != ModeManual {
		t.Errorf("expected manual mode, got %v", c.Mode())
	}
}

func TestConfirmSubmitsManualBuffer(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Input("R")
	c.Input("RF")
	c.Confirm()

	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(got))
	}
	if got[0].raw != "RF" || got[0].mode != ModeManual {
		t.Errorf("unexpected submission: %+v", got[0])
	}
}

func TestConfirmEmptyBufferIsNoop(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Confirm()
	if len(rec.all()) != 0 {
		t.Fatal("expected no submission for empty buffer")
	}
}

func TestConfirmPreemptsAutoSubmit(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Input("RFID001")
	c.Confirm()

	time.Sleep(quiesce * 4)
	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 submission, got %d", len(got))
	}
	if got[0].mode != ModeReaderBurst {
		t.Errorf("expected burst mode to be reported, got %v", got[0].mode)
	}
}

func TestReset(t *testing.T) {
	rec := &submitRecorder{}
	c := New(quiesce, rec.submit, nil)

	c.Input("RFID001")
	c.Reset()

	time.Sleep(quiesce * 4)
	if len(rec.all()) != 0 {
		t.Fatal("expected reset to cancel pending submission")
	}

	c.Confirm()
	if len(rec.all()) != 0 {
		t.Fatal("expected confirm after reset to submit nothing")
	}
}

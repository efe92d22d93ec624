package logbook

import (
	"fmt"
	"strings"
	"testing"
)

func TestAddTimestampsEntries(t *testing.T) {
	b := New(nil)
	b.Add("Product added: Laptop (RFID001)")

	all := b.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if !strings.HasPrefix(all[0], "[") || !strings.HasSuffix(all[0], "Product added: Laptop (RFID001)") {
		t.Errorf("unexpected entry format: %q", all[0])
	}
}

func TestAddf(t *testing.T) {
	b := New(nil)
	b.Addf("Sold %d products", 3)

	if all := b.All(); !strings.Contains(all[0], "Sold 3 products") {
		t.Errorf("unexpected entry: %q", all[0])
	}
}

func TestTailCapsAtDurableCap(t *testing.T) {
	b := New(nil)
	for i := 0; i < DurableCap+20; i++ {
		b.Add(fmt.Sprintf("entry %d", i))
	}

	tail := b.Tail()
	if len(tail) != DurableCap {
		t.Fatalf("expected %d entries, got %d", DurableCap, len(tail))
	}
	// Oldest durable entry is the one just past the overflow.
	if !strings.Contains(tail[0], "entry 20") {
		t.Errorf("unexpected oldest entry: %q", tail[0])
	}
	if !strings.Contains(tail[len(tail)-1], fmt.Sprintf("entry %d", DurableCap+19)) {
		t.Errorf("unexpected newest entry: %q", tail[len(tail)-1])
	}

	// The session history itself is unbounded.
	if len(b.All()) != DurableCap+20 {
		t.Errorf("expected full history retained, got %d", len(b.All()))
	}
}

func TestReplace(t *testing.T) {
	b := New(nil)
	b.Add("old entry")

	restored := []string{"[10:00:00] restored one", "[10:00:01] restored two"}
	b.Replace(restored)

	all := b.All()
	if len(all) != 2 || all[0] != restored[0] {
		t.Errorf("unexpected history after replace: %v", all)
	}
}

func TestClear(t *testing.T) {
	b := New(nil)
	b.Add("entry")
	b.Clear()

	if len(b.All()) != 0 {
		t.Error("expected empty history after clear")
	}
}

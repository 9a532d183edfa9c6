package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/score"
)

func typeRune(t *testing.T, m *Model, r rune) {
	t.Helper()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestRecorderCapturesEvents(t *testing.T) {
	m := NewModel("ab c")
	for _, r := range "ab c" {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		typeRune(t, m, r)
	}
	res := m.Result()
	if !res.Done || res.Aborted {
		t.Fatalf("session done=%v aborted=%v, want done", res.Done, res.Aborted)
	}
	if len(res.Events) != 4 {
		t.Fatalf("got %d events, want 4", len(res.Events))
	}
	wantKeys := []uint8{0, 1, replay.KeySpace, 2}
	for i, ev := range res.Events {
		if ev.Key != wantKeys[i] {
			t.Fatalf("event %d key = %d, want %d", i, ev.Key, wantKeys[i])
		}
		if ev.DtMs < score.MinEventGapMs {
			t.Fatalf("event %d dt %d below floor", i, ev.DtMs)
		}
	}
}

func TestRecorderBackspaceRemovesInput(t *testing.T) {
	m := NewModel("ab")
	typeRune(t, m, 'x')
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	typeRune(t, m, 'a')
	typeRune(t, m, 'b')
	res := m.Result()
	if !res.Done {
		t.Fatal("session not done")
	}
	if len(res.Events) != 4 {
		t.Fatalf("got %d events, want 4 (typed, backspace, typed, typed)", len(res.Events))
	}
	if res.Events[1].Key != replay.KeyBackspace {
		t.Fatalf("event 1 key = %d, want backspace", res.Events[1].Key)
	}
	if res.Stats.ReconstructedText != "ab" {
		t.Fatalf("reconstructed %q, want %q", res.Stats.ReconstructedText, "ab")
	}
}

func TestRecorderBackspaceOnEmptyNotRecorded(t *testing.T) {
	m := NewModel("ab")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.Result().Events) != 0 {
		t.Fatal("backspace on empty input should not record an event")
	}
}

func TestRecorderUppercaseFoldsToLower(t *testing.T) {
	m := NewModel("ab")
	typeRune(t, m, 'A')
	typeRune(t, m, 'B')
	res := m.Result()
	if !res.Done {
		t.Fatal("session not done")
	}
	if res.Events[0].Key != 0 || res.Events[1].Key != 1 {
		t.Fatalf("keys = %d,%d, want 0,1", res.Events[0].Key, res.Events[1].Key)
	}
}

func TestRecorderIgnoresOutOfAlphabetRunes(t *testing.T) {
	m := NewModel("ab")
	typeRune(t, m, '1')
	typeRune(t, m, 'é')
	if len(m.Result().Events) != 0 {
		t.Fatal("out-of-alphabet runes should not record events")
	}
}

func TestRecorderEscAborts(t *testing.T) {
	m := NewModel("ab")
	typeRune(t, m, 'a')
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	res := m.Result()
	if !res.Aborted || res.Done {
		t.Fatalf("aborted=%v done=%v, want aborted", res.Aborted, res.Done)
	}
}

func TestRecorderEnterFinishesEarly(t *testing.T) {
	m := NewModel("abcd")
	typeRune(t, m, 'a')
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := m.Result()
	if !res.Done {
		t.Fatal("enter should finish the session")
	}
	last := res.Events[len(res.Events)-1]
	if last.Key != replay.KeyEnter {
		t.Fatalf("last key = %d, want enter", last.Key)
	}
}

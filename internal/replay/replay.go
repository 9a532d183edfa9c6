// Package replay defines the timed key event record, its binary wire
// encoding, and the deterministic interpreter that reconstructs typed text.
package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Key codes form a closed alphabet: 0-25 map to 'a'-'z', then the three
// control codes below. Anything above KeyEnter is invalid.
const (
	KeyLetterMax = 25
	KeySpace     = 26
	KeyBackspace = 27
	KeyEnter     = 28
)

// MaxEvents is the hard ceiling imposed by the u16 count prefix.
const MaxEvents = 0xFFFF

// recordSize is the wire size of one encoded event.
const recordSize = 3

var (
	// ErrRange reports a value outside a declared bound (event count, key code).
	ErrRange = errors.New("replay: value out of range")
	// ErrFormat reports malformed encoded input.
	ErrFormat = errors.New("replay: malformed encoding")
	// ErrInvalidKey reports a key code outside the closed alphabet during replay.
	ErrInvalidKey = errors.New("replay: invalid key code")
)

// Event is a single timed keystroke. DtMs is the elapsed time since the
// previous event (or recording start for the first one) in whole milliseconds.
type Event struct {
	DtMs uint16
	Key  uint8
}

// Encode serializes events to the wire form: a u16 little-endian count
// followed by count 3-byte records (dt_ms u16 LE, key u8).
func Encode(events []Event) ([]byte, error) {
	if len(events) > MaxEvents {
		return nil, fmt.Errorf("%w: %d events exceeds %d", ErrRange, len(events), MaxEvents)
	}
	out := make([]byte, 2, 2+len(events)*recordSize)
	binary.LittleEndian.PutUint16(out, uint16(len(events)))
	for _, ev := range events {
		if ev.Key > KeyEnter {
			return nil, fmt.Errorf("%w: key %d exceeds %d", ErrRange, ev.Key, KeyEnter)
		}
		var rec [recordSize]byte
		binary.LittleEndian.PutUint16(rec[:2], ev.DtMs)
		rec[2] = ev.Key
		out = append(out, rec[:]...)
	}
	return out, nil
}

// Decode parses the wire form back into events. The total length must equal
// exactly 2 + 3*count; trailing or missing bytes are rejected rather than
// tolerated so malformed input cannot be reinterpreted ambiguously.
func Decode(data []byte) ([]Event, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the count prefix", ErrFormat, len(data))
	}
	count := int(binary.LittleEndian.Uint16(data))
	if want := 2 + count*recordSize; len(data) != want {
		return nil, fmt.Errorf("%w: length %d does not match %d for %d events", ErrFormat, len(data), want, count)
	}
	events := make([]Event, count)
	for i := 0; i < count; i++ {
		rec := data[2+i*recordSize:]
		events[i] = Event{
			DtMs: binary.LittleEndian.Uint16(rec[:2]),
			Key:  rec[2],
		}
	}
	return events, nil
}

// Apply replays events strictly in order and returns the reconstructed text.
// Letter codes append 'a'+code, KeySpace appends a space, KeyBackspace drops
// the last output byte when one exists (a no-op on empty output, never an
// error), and KeyEnter is a terminator marker with no text effect. Any code
// above KeyEnter is a hard reject: it signals corruption or an attempt to
// exploit undefined behavior.
func Apply(events []Event) (string, error) {
	out := make([]byte, 0, len(events))
	for i, ev := range events {
		switch {
		case ev.Key <= KeyLetterMax:
			out = append(out, 'a'+ev.Key)
		case ev.Key == KeySpace:
			out = append(out, ' ')
		case ev.Key == KeyBackspace:
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case ev.Key == KeyEnter:
			// End-of-session marker; no text effect.
		default:
			return "", fmt.Errorf("%w: %d at event %d", ErrInvalidKey, ev.Key, i)
		}
	}
	return string(out), nil
}

// Duration sums all event deltas in milliseconds.
func Duration(events []Event) uint64 {
	var total uint64
	for _, ev := range events {
		total += uint64(ev.DtMs)
	}
	return total
}

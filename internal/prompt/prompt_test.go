package prompt

import (
	"bytes"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  HeLLo\t  WoRLD  ", "hello world"},
		{"hello world", "hello world"},
		{"", ""},
		{" \t\n\r ", ""},
		{"A\nB\tC", "a b c"},
		{"one  two\r\nthree", "one two three"},
		{"MiXeD CaSe!", "mixed case!"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Fatalf("normalize %q = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  HeLLo  WoRLD ", "abc", "A\tB", ""}
	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("normalize %q: %v", in, err)
		}
		twice, err := Normalize(string(once))
		if err != nil {
			t.Fatalf("normalize twice %q: %v", once, err)
		}
		if !bytes.Equal(once, twice) {
			t.Fatalf("normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeRejectsNonASCII(t *testing.T) {
	for _, in := range []string{"héllo", "日本語", "ok\x80"} {
		if _, err := Normalize(in); !errors.Is(err, ErrEncoding) {
			t.Fatalf("expected ErrEncoding for %q, got %v", in, err)
		}
	}
}

func TestHashStable(t *testing.T) {
	norm, err := Normalize("  Hello  World ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	other, err := Normalize("hello world")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if Hash(norm) != Hash(other) {
		t.Fatalf("surface variants of the same prompt must hash identically")
	}
	if Hash(norm) == Hash([]byte("hello worlds")) {
		t.Fatalf("distinct prompts must not collide in test vectors")
	}
}

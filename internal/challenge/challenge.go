// Package challenge builds typing challenge prompts from word lists. Prompts
// are generated in normal form (lowercase a-z words joined by single spaces)
// so the text shown to the player is byte-identical to what gets hashed.
package challenge

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/typeproof/typeproof/internal/prompt"
)

// Challenge pairs a prompt with its normalized-content digest, the prompt's
// identity everywhere downstream.
type Challenge struct {
	Prompt string
	Hash   [prompt.HashSize]byte
}

// HashHex returns the digest in lowercase hex.
func (c Challenge) HashHex() string {
	return hex.EncodeToString(c.Hash[:])
}

// LoadWords reads one word per line, keeping only words made of a-z.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if !isLowerAlpha(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list has no usable words")
	}
	return words, nil
}

// Generator produces randomized challenge prompts.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededGenerator returns a Generator with a fixed seed, for
// reproducible prompts.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects count words uniformly and builds the challenge. The
// result is already in normal form: normalizing it again is the identity.
func (g *Generator) Generate(words []string, count int) (Challenge, error) {
	if len(words) == 0 {
		return Challenge{}, fmt.Errorf("word list is empty")
	}
	if count <= 0 {
		return Challenge{}, fmt.Errorf("word count must be positive")
	}
	picked := make([]string, count)
	for i := range picked {
		picked[i] = words[g.rnd.Intn(len(words))]
	}
	text := strings.Join(picked, " ")
	return New(text)
}

// New builds a Challenge from arbitrary prompt text, normalizing it first.
func New(text string) (Challenge, error) {
	normalized, err := prompt.Normalize(text)
	if err != nil {
		return Challenge{}, err
	}
	if len(normalized) == 0 {
		return Challenge{}, fmt.Errorf("challenge prompt is empty after normalization")
	}
	return Challenge{
		Prompt: string(normalized),
		Hash:   prompt.Hash(normalized),
	}, nil
}

func isLowerAlpha(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

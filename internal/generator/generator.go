// Package generator builds typing text sequences.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// DefaultWords is the number of words in a generated text.
const DefaultWords = 50

// Options controls the shape of generated text.
type Options struct {
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator produces randomized typing text from a fixed corpus.
type Generator struct {
	rnd    *rand.Rand
	corpus []string
	opts   Options
}

// New returns a Generator seeded with the current time.
func New(corpus []string, opts Options) (*Generator, error) {
	return NewSeeded(corpus, opts, time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, producing the same
// sequence of texts for the same corpus and options.
func NewSeeded(corpus []string, opts Options, seed int64) (*Generator, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	if opts.Words <= 0 {
		opts.Words = DefaultWords
	}
	words := make([]string, len(corpus))
	copy(words, corpus)
	return &Generator{
		rnd:    rand.New(rand.NewSource(seed)),
		corpus: words,
		opts:   opts,
	}, nil
}

// Generate selects words uniformly with repetition and joins them with spaces.
func (g *Generator) Generate() string {
	return strings.Join(g.Words(), " ")
}

// Words selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Words() []string {
	result := make([]string, 0, g.opts.Words)
	for i := 0; i < g.opts.Words; i++ {
		word := g.corpus[g.rnd.Intn(len(g.corpus))]
		word = applyCaps(g.rnd, word, g.opts.CapsPct)
		word = applyPunct(g.rnd, word, g.opts.PunctPct, g.opts.PunctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

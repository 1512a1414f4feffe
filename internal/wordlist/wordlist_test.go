package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWordsSkipsBlankAndUntypeable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("cat\n\n  dog  \nbad word\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "cat" || words[1] != "dog" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	words, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != len(Default()) {
		t.Fatalf("expected default corpus")
	}
	for _, w := range words {
		if !Typeable(w) {
			t.Fatalf("default corpus word %q is not typeable", w)
		}
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a[0] = "mutated"
	if Default()[0] == "mutated" {
		t.Fatalf("expected Default to return a fresh slice")
	}
}

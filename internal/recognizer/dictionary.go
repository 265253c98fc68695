package recognizer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Dictionary maps recognition class indexes to characters. The model
// reserves class 0 for the CTC blank and appends a space class after the
// dictionary entries, so the class count is len(keys)+2.
type Dictionary struct {
	keys []string
}

// LoadDictionary reads a keys file with one token per line. Blank lines
// are skipped and a UTF-8 BOM on the first line is dropped.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return nil, errors.New("empty dictionary path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing dictionary file: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(f)
	keys := make([]string, 0, 512)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("dictionary is empty: %s", path)
	}
	return &Dictionary{keys: keys}, nil
}

// Size returns the number of dictionary tokens, excluding the blank and
// space classes.
func (d *Dictionary) Size() int { return len(d.keys) }

// NumClasses returns the model output width the dictionary corresponds to.
func (d *Dictionary) NumClasses() int { return len(d.keys) + 2 }

// Token resolves a model class index. Index 0 is the blank and resolves to
// the empty string, indexes past the dictionary resolve to a space.
func (d *Dictionary) Token(class int) string {
	switch {
	case class <= 0:
		return ""
	case class <= len(d.keys):
		return d.keys[class-1]
	default:
		return " "
	}
}

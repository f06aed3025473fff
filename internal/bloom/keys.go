package bloom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadKeys reads one key per line. Blank lines and lines starting with #
// are skipped; surrounding whitespace is trimmed.
func ReadKeys(r io.Reader) ([]string, error) {
	var keys []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// ReadKeysFile reads a key list from path.
func ReadKeysFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	keys, err := ReadKeys(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return keys, nil
}

// BuildSet builds both correction filters at false-positive probability p.
func BuildSet(undercount, overcount []string, p float64) (*Set, error) {
	if p <= 0 || p >= 1 {
		return nil, fmt.Errorf("false-positive probability %v out of range (0, 1)", p)
	}
	under, err := Build(undercount, p)
	if err != nil {
		return nil, fmt.Errorf("undercount: %w", err)
	}
	over, err := Build(overcount, p)
	if err != nil {
		return nil, fmt.Errorf("overcount: %w", err)
	}
	return &Set{Undercount: under, Overcount: over}, nil
}

package prover

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rfielding/kripke-tableau/parser"
)

// LoadFile reads the formulas in path, one per line.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	formulas, err := ReadFormulas(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return formulas, nil
}

// ReadFormulas reads one formula per line. Blank lines and lines starting
// with # are skipped; operator aliases are replaced by their glyphs.
func ReadFormulas(r io.Reader) ([]string, error) {
	var formulas []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		formulas = append(formulas, parser.Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return formulas, nil
}

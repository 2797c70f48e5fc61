package emotions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadScripts reads voice lines from a JSON file shaped like
//
//	{"happy": ["...", "...", "...", "...", "..."], "sad": [...]}
//
// Labels may be omitted; every list present must hold exactly five
// non-empty lines.
func LoadScripts(path string) (map[Label][LinesPerLabel]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice scripts: %w", err)
	}
	return ParseScripts(data)
}

// ParseScripts decodes and validates voice lines.
func ParseScripts(data []byte) (map[Label][LinesPerLabel]string, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScripts, err)
	}

	out := make(map[Label][LinesPerLabel]string, len(raw))
	for key, lines := range raw {
		label, ok := Parse(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown emotion %q", ErrInvalidScripts, key)
		}
		if len(lines) != LinesPerLabel {
			return nil, fmt.Errorf("%w: %s has %d lines, want %d", ErrInvalidScripts, label, len(lines), LinesPerLabel)
		}
		var fixed [LinesPerLabel]string
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				return nil, fmt.Errorf("%w: %s line %d is empty", ErrInvalidScripts, label, i)
			}
			fixed[i] = line
		}
		out[label] = fixed
	}
	return out, nil
}

// ApplyScripts overrides the registry's lines with scripts.
func (r *Registry) ApplyScripts(scripts map[Label][LinesPerLabel]string) error {
	for l, lines := range scripts {
		if err := r.SetLines(l, lines); err != nil {
			return err
		}
	}
	return nil
}

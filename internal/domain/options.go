package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// OptionLabels is the label alphabet every stored option key belongs to.
var OptionLabels = []string{"A", "B", "C", "D", "E"}

var circledLabels = map[rune]string{'①': "A", '②': "B", '③': "C", '④': "D", '⑤': "E"}
var digitLabels = map[rune]string{'1': "A", '2': "B", '3': "C", '4': "D", '5': "E"}

// NormalizeLabel maps the first character of s onto the A..E alphabet.
// Circled numerals ①..⑤ and digits 1..5 map in order; lower-case letters are upper-cased.
func NormalizeLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if l, ok := circledLabels[r]; ok {
		return l, true
	}
	if l, ok := digitLabels[r]; ok {
		return l, true
	}
	if r >= 'a' && r <= 'e' {
		r -= 'a' - 'A'
	}
	if r >= 'A' && r <= 'E' {
		return string(r), true
	}
	return "", false
}

// IsOptionLabel reports whether s is exactly one canonical label.
func IsOptionLabel(s string) bool {
	for _, l := range OptionLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Options maps a canonical label to the option text. Key order carries no meaning.
type Options map[string]string

// Labels returns the keys in label order.
func (o Options) Labels() []string {
	labels := make([]string, 0, len(o))
	for l := range o {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// JoinedText concatenates the option texts in label order, separated by a space.
func (o Options) JoinedText() string {
	texts := make([]string, 0, len(o))
	for _, l := range o.Labels() {
		texts = append(texts, o[l])
	}
	return strings.Join(texts, " ")
}

// Lines renders the legacy "LABEL. text" list form.
func (o Options) Lines() []string {
	lines := make([]string, 0, len(o))
	for _, l := range o.Labels() {
		lines = append(lines, fmt.Sprintf("%s. %s", l, o[l]))
	}
	return lines
}

// OptionsFromLines converts "A. foo" style lines to the mapping form.
// Lines without a recognisable label are stored under the next free label.
// A repeated label keeps its first text.
func OptionsFromLines(lines []string) Options {
	opts := make(Options, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, ok := NormalizeLabel(line)
		text := line
		if ok {
			_, size := utf8.DecodeRuneInString(line)
			rest := line[size:]
			_, circled := circledLabels[[]rune(line)[0]]
			if strings.IndexAny(rest, ".):：") == 0 || circled {
				text = strings.TrimLeft(rest, ".):： \t")
			} else {
				ok = false
			}
		}
		if !ok {
			label = nextFreeLabel(opts)
			if label == "" {
				continue
			}
		}
		if _, exists := opts[label]; exists {
			continue
		}
		opts[label] = strings.TrimSpace(text)
	}
	return opts
}

func nextFreeLabel(opts Options) string {
	for _, l := range OptionLabels {
		if _, ok := opts[l]; !ok {
			return l
		}
	}
	return ""
}

// UnmarshalJSON accepts both the mapping form and the legacy list form.
func (o *Options) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*o = Options{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("options list: %w", err)
		}
		*o = OptionsFromLines(lines)
		return nil
	}
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("options map: %w", err)
	}
	opts := make(Options, len(raw))
	for k, v := range raw {
		if label, ok := NormalizeLabel(k); ok && utf8.RuneCountInString(strings.TrimSpace(k)) == 1 {
			opts[label] = v
		} else {
			opts[k] = v
		}
	}
	*o = opts
	return nil
}

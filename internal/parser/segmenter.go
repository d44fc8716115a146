package parser

import (
	"context"
	"regexp"
	"strings"

	"cert-study/internal/domain"

	"golang.org/x/text/unicode/norm"
)

var (
	// "12. stem text" or a bare "12."; "3.5 GB" is not a question number.
	questionStartRe = regexp.MustCompile(`^(\d+)\.\s*(\D.*)?$`)
	// circled numerals are often printed without a separator
	optionLineRe   = regexp.MustCompile(`^(?:[A-E][.):：]|[①-⑤][.):：]?)\s*(.*)$`)
	answerMarkerRe = regexp.MustCompile(`(?i)^\[?\s*(?:정답|answer)\s*(?:[:：]|\])\s*(.*)$`)
	explMarkerRe   = regexp.MustCompile(`(?i)^\[?\s*(?:해설|explanation)\s*(?:[:：]|\])\s*(.*)$`)
)

type segmentState int

const (
	seekingQuestion segmentState = iota
	inStem
	inOptions
	inExplanation
)

// draft accumulates one question while lines are consumed.
type draft struct {
	stem        []string
	optionLines []string
	answer      string
	explanation []string
}

func (d *draft) question() *domain.Question {
	answer := d.answer
	if answer == "" {
		answer = domain.AnswerUnknown
	}
	return &domain.Question{
		Stem:        strings.Join(d.stem, " "),
		Options:     domain.OptionsFromLines(d.optionLines),
		Answer:      answer,
		Explanation: strings.TrimSpace(strings.Join(d.explanation, "\n")),
	}
}

// segmenter is the line state machine behind Segment.
type segmenter struct {
	state   segmentState
	current *draft
	drafts  []*draft
}

func (s *segmenter) flush() {
	if s.current != nil {
		s.drafts = append(s.drafts, s.current)
		s.current = nil
	}
}

func (s *segmenter) consume(line string) {
	if questionStartRe.MatchString(line) {
		s.flush()
		s.current = &draft{stem: []string{line}}
		s.state = inStem
		return
	}
	if s.current == nil {
		return
	}

	if m := answerMarkerRe.FindStringSubmatch(line); m != nil {
		// the first marker of a question wins
		if label, ok := firstAnswerLabel(m[1]); ok && s.current.answer == "" {
			s.current.answer = label
		}
		if s.state == inExplanation {
			s.state = inOptions
		}
		return
	}
	if m := explMarkerRe.FindStringSubmatch(line); m != nil {
		s.state = inExplanation
		if rest := strings.TrimSpace(m[1]); rest != "" {
			s.current.explanation = append(s.current.explanation, rest)
		}
		return
	}
	if optionLineRe.MatchString(line) {
		s.current.optionLines = append(s.current.optionLines, line)
		s.state = inOptions
		return
	}
	if s.state == inExplanation {
		s.current.explanation = append(s.current.explanation, line)
		return
	}
	s.current.stem = append(s.current.stem, line)
}

// firstAnswerLabel returns the first character of s in {A-E, ①-⑤, 1-5}, canonicalised.
func firstAnswerLabel(s string) (string, bool) {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'E', r >= '①' && r <= '⑤', r >= '1' && r <= '5':
			return domain.NormalizeLabel(string(r))
		}
	}
	return "", false
}

// Segment splits recognised exam text into questions with the line state machine.
// Items whose stem is too short or that carry fewer than two options are dropped.
func Segment(text string) []*domain.Question {
	s := &segmenter{}
	for _, raw := range strings.Split(norm.NFC.String(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		s.consume(line)
	}
	s.flush()

	out := make([]*domain.Question, 0, len(s.drafts))
	for _, d := range s.drafts {
		q := d.question()
		if q.IsRetainable() {
			out = append(out, q)
		}
	}
	return out
}

// RegexStructurer implements domain.Structurer with Segment.
type RegexStructurer struct{}

func NewRegexStructurer() *RegexStructurer {
	return &RegexStructurer{}
}

func (r *RegexStructurer) Structure(ctx context.Context, text string) ([]*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Segment(text), nil
}

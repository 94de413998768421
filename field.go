package drill

import (
	"errors"
	"strconv"
	"strings"
)

// Field is one numeric entry in a worksheet. The core never mutates fields;
// callers own them and pass snapshots to Grade.
type Field struct {
	// ID identifies the field in grading results.
	ID string `json:"id"`
	// EquationTags is a whitespace-separated list of cell ids, e.g. "1c 2a"
	// for a field shared between equations 1 and 2.
	EquationTags string `json:"equation_tags"`
	// Unknown marks a field the learner must fill, as opposed to a given.
	Unknown bool `json:"unknown"`
	// Text is the learner's current entry.
	Text string `json:"text"`
	// Placeholder is the pre-filled text of a given field, used when Text is
	// empty.
	Placeholder string `json:"placeholder,omitempty"`
}

// content is the text the field contributes to its equations: the entered
// text when present, otherwise the placeholder.
func (f *Field) content() string {
	if t := strings.TrimSpace(f.Text); t != "" {
		return t
	}
	return strings.TrimSpace(f.Placeholder)
}

// Status classifies a field after a grading pass.
type Status int

const (
	// StatusNone marks a field outside grading: a given, or an unknown that
	// belongs to no evaluable equation.
	StatusNone Status = iota
	// StatusEmpty marks an unknown field with nothing entered.
	StatusEmpty
	// StatusCorrect marks a field correct in every equation it belongs to.
	StatusCorrect
	// StatusWrong marks a field correct in none of its equations.
	StatusWrong
	// StatusPartial marks a shared field correct in some equations only.
	StatusPartial
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusEmpty:
		return "empty"
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	case StatusPartial:
		return "partial"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// MarshalJSON encodes a status by its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// UnmarshalJSON decodes a status from its name.
func (s *Status) UnmarshalJSON(data []byte) error {
	name, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	for _, v := range []Status{StatusNone, StatusEmpty, StatusCorrect, StatusWrong, StatusPartial} {
		if v.String() == name {
			*s = v
			return nil
		}
	}
	return errors.New("drill: unknown status " + strconv.Quote(name))
}

// normalizeGlyphs rewrites the display multiplication and division signs to
// the forms the tokenizer understands.
func normalizeGlyphs(s string) string {
	s = strings.ReplaceAll(s, "×", "*")
	return strings.ReplaceAll(s, "÷", "/")
}

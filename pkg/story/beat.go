package story

import (
	"fmt"
	"strings"
)

// Beat is one decision point of a storyline: the action label offered to
// the player as a menu choice and the outcome narrative shown once the
// action is taken. The root beat's action is never displayed.
type Beat struct {
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// EncodeText renders the beat in its wire form:
//
//	action: "<action>" outcome: "<outcome>"
//
// The encoding is raw, not escaped; Validate rejects values the format
// cannot carry.
func (b Beat) EncodeText() string {
	return `action: "` + b.Action + `" outcome: "` + b.Outcome + `"`
}

// DecodeText parses a line produced by EncodeText. A single trailing space
// is tolerated for compatibility with files written by older tooling.
func (Beat) DecodeText(s string) (Beat, error) {
	s = strings.TrimSuffix(s, " ")

	rest, ok := strings.CutPrefix(s, `action: "`)
	if !ok {
		return Beat{}, fmt.Errorf("beat: missing action field in %q", s)
	}
	action, rest, ok := strings.Cut(rest, `"`)
	if !ok {
		return Beat{}, fmt.Errorf("beat: unterminated action in %q", s)
	}

	rest, ok = strings.CutPrefix(rest, ` outcome: "`)
	if !ok {
		return Beat{}, fmt.Errorf("beat: missing outcome field in %q", s)
	}
	outcome, rest, ok := strings.Cut(rest, `"`)
	if !ok {
		return Beat{}, fmt.Errorf("beat: unterminated outcome in %q", s)
	}
	if rest != "" {
		return Beat{}, fmt.Errorf("beat: trailing content %q", rest)
	}

	return Beat{Action: action, Outcome: outcome}, nil
}

// Equal reports whether two beats carry the same action and outcome.
func (b Beat) Equal(other Beat) bool {
	return b == other
}

// Validate reports whether the beat survives the wire format. Double
// quotes would corrupt the field delimiters and newlines would break the
// one-line-per-entry contract of the tree serialization.
func (b Beat) Validate() error {
	for field, v := range map[string]string{"action": b.Action, "outcome": b.Outcome} {
		if strings.ContainsAny(v, "\n\r") {
			return fmt.Errorf("beat: %s must not contain newlines", field)
		}
		if strings.Contains(v, `"`) {
			return fmt.Errorf("beat: %s must not contain double quotes", field)
		}
	}
	return nil
}

package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Parameter domains accepted by the research service.
const (
	MinSampleSize = 1
	MaxSampleSize = 20

	MinQuestionsPerInterview = 1
	MaxQuestionsPerInterview = 10

	// DefaultSampleSize and DefaultQuestionsPerInterview seed a fresh form.
	DefaultSampleSize            = 4
	DefaultQuestionsPerInterview = 4
)

// Count is an integer parsed from user input.
//
// A Count that failed to parse is not a number: Valid is false and the value
// is sent on the wire as JSON null. The service rejects it; nothing on this
// side clamps or substitutes a value.
type Count struct {
	Value int
	Valid bool
}

// NewCount returns a valid Count.
func NewCount(n int) Count {
	return Count{Value: n, Valid: true}
}

// ParseCount parses raw form text into a Count.
// Surrounding whitespace is ignored; anything else that is not a base-10
// integer yields the not-a-number Count. A leading number is not salvaged:
// "3.7" and "5abc" are not-a-number, not 3 and 5.
func ParseCount(raw string) Count {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Count{}
	}
	return NewCount(n)
}

// InRange reports whether the count is a number within [lo, hi].
func (c Count) InRange(lo, hi int) bool {
	return c.Valid && c.Value >= lo && c.Value <= hi
}

// String returns the decimal value, or "NaN" for a count that failed to parse.
func (c Count) String() string {
	if !c.Valid {
		return "NaN"
	}
	return strconv.Itoa(c.Value)
}

// MarshalJSON encodes an invalid count as null.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.Value)), nil
}

// UnmarshalJSON accepts an integer or null.
func (c *Count) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Count{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("count: %w", err)
	}
	*c = NewCount(n)
	return nil
}

// RequestParameters is one research request as entered by the user.
// A fresh value is built from the form fields for every submission.
type RequestParameters struct {
	// Credential is forwarded to the service verbatim and never displayed.
	Credential            string
	Topic                 string
	TargetDemographic     string
	SampleSize            Count
	QuestionsPerInterview Count
}

// QA is a single question and the persona's answer to it.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Persona is a synthetic interview subject generated by the service.
type Persona struct {
	Name   string `json:"name"`
	Age    Age    `json:"age"`
	Job    string `json:"job"`
	Traits Traits `json:"traits"`

	// Optional descriptive fields the service includes for richer output.
	CommunicationStyle string `json:"communication_style,omitempty"`
	Background         string `json:"background,omitempty"`
}

// Interview pairs a persona with its answers, in questionnaire order.
type Interview struct {
	Persona   Persona `json:"persona"`
	Responses []QA    `json:"responses"`
}

// Result holds the payload of a successful research response.
// Every field is optional; an empty Synthesis counts as absent.
type Result struct {
	Synthesis  string      `json:"synthesis,omitempty"`
	Questions  []string    `json:"questions,omitempty"`
	Interviews []Interview `json:"interviews,omitempty"`
}

// HasSynthesis reports whether a synthesis text is present.
func (r *Result) HasSynthesis() bool {
	return r != nil && r.Synthesis != ""
}

// Age is a persona's age as sent by the service, which uses either a JSON
// number or a string. It is kept as display text.
type Age string

// UnmarshalJSON accepts a number, a string or null.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("age: %w", err)
		}
		*a = Age(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("age: %w", err)
		}
		*a = Age(n.String())
	}
	return nil
}

// MarshalJSON writes numeric ages back as numbers.
func (a Age) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(a), 64); err == nil && json.Valid([]byte(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

// Traits is the normalized list of persona traits.
//
// The service sends either a list or a single descriptive string. Both are
// decoded into Items; a single string becomes a one-element list, so joining
// the items reproduces the string verbatim. FromList remembers the original
// shape so the value can be re-encoded unchanged.
type Traits struct {
	Items    []string
	FromList bool
}

// TraitList builds list-shaped traits.
func TraitList(items ...string) Traits {
	return Traits{Items: items, FromList: true}
}

// TraitText builds traits from a single descriptive string.
func TraitText(text string) Traits {
	return Traits{Items: []string{text}}
}

// String joins the traits with ", ".
func (t Traits) String() string {
	return strings.Join(t.Items, ", ")
}

// UnmarshalJSON accepts a string, a list or null. List elements that are not
// strings are kept as their JSON text; null elements become empty strings.
func (t *Traits) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Traits{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("traits: %w", err)
		}
		*t = TraitText(s)
		return nil

	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("traits: %w", err)
		}
		items := make([]string, 0, len(raw))
		for _, elem := range raw {
			items = append(items, traitText(elem))
		}
		*t = Traits{Items: items, FromList: true}
		return nil
	}

	return fmt.Errorf("traits: expected string or list, got %s", truncate(string(data), 32))
}

// MarshalJSON re-encodes traits in the shape they arrived in.
func (t Traits) MarshalJSON() ([]byte, error) {
	if !t.FromList && len(t.Items) == 1 {
		return json.Marshal(t.Items[0])
	}
	items := t.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

func traitText(elem json.RawMessage) string {
	elem = bytes.TrimSpace(elem)
	if bytes.Equal(elem, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(elem, &s); err == nil {
		return s
	}
	return string(elem)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

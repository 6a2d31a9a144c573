package workout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotApplicableText is how a missing measurement is shown and stored.
const NotApplicableText = "N/A"

type MeasurementKind int

const (
	KindNotApplicable MeasurementKind = iota
	KindNumeric
	KindDescriptive
)

func (k MeasurementKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDescriptive:
		return "descriptive"
	default:
		return "not_applicable"
	}
}

// Measurement holds a weight or reps value entered for a set. It is either a
// number (60, 12.5), free text ("BW", "BW+10", "1:30", "5km") or not applicable.
type Measurement struct {
	kind  MeasurementKind
	value float64
	text  string
}

func Numeric(v float64) Measurement {
	return Measurement{kind: KindNumeric, value: v}
}

func Descriptive(text string) Measurement {
	return Measurement{kind: KindDescriptive, text: text}
}

func NotApplicable() Measurement {
	return Measurement{kind: KindNotApplicable}
}

// ParseMeasurement reads user input: empty and "N/A" become NotApplicable,
// decimal numbers become Numeric, anything else is kept as Descriptive text.
func ParseMeasurement(raw string) Measurement {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, NotApplicableText) {
		return NotApplicable()
	}
	// ParseFloat also accepts nan and inf, which have no JSON form
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Numeric(v)
	}
	return Descriptive(s)
}

func (m Measurement) Kind() MeasurementKind {
	return m.kind
}

// Number returns the numeric value, ok is false for non numeric measurements.
func (m Measurement) Number() (float64, bool) {
	if m.kind != KindNumeric {
		return 0, false
	}
	return m.value, true
}

func (m Measurement) IsNotApplicable() bool {
	return m.kind == KindNotApplicable
}

func (m Measurement) String() string {
	switch m.kind {
	case KindNumeric:
		return strconv.FormatFloat(m.value, 'f', -1, 64)
	case KindDescriptive:
		return m.text
	default:
		return NotApplicableText
	}
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case KindNumeric:
		return []byte(strconv.FormatFloat(m.value, 'f', -1, 64)), nil
	case KindDescriptive:
		return json.Marshal(m.text)
	default:
		return json.Marshal(NotApplicableText)
	}
}

func (m *Measurement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = NotApplicable()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("measurement: %w", err)
		}
		*m = ParseMeasurement(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("measurement: %w", err)
	}
	*m = Numeric(v)
	return nil
}

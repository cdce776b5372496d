package form

import "fmt"

// Field identifies one of the five form inputs.
type Field int

const (
	FieldCredential Field = iota
	FieldTopic
	FieldTargetDemographic
	FieldSampleSize
	FieldQuestionsPerInterview

	numFields
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldCredential,
	FieldTopic,
	FieldTargetDemographic,
	FieldSampleSize,
	FieldQuestionsPerInterview,
}

// String returns the label shown next to the input.
func (f Field) String() string {
	switch f {
	case FieldCredential:
		return "API Key"
	case FieldTopic:
		return "Research Topic"
	case FieldTargetDemographic:
		return "Target Demographic"
	case FieldSampleSize:
		return "Sample Size (Interviews)"
	case FieldQuestionsPerInterview:
		return "Questions per Interview"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Placeholder returns example input for the field.
func (f Field) Placeholder() string {
	switch f {
	case FieldCredential:
		return "Enter your API key"
	case FieldTopic:
		return "e.g., Impact of aging population on healthcare"
	case FieldTargetDemographic:
		return "e.g., Healthcare professionals aged 30-50"
	case FieldSampleSize:
		return "1-20"
	case FieldQuestionsPerInterview:
		return "1-10"
	default:
		return ""
	}
}

// Numeric reports whether the field holds an integer.
func (f Field) Numeric() bool {
	return f == FieldSampleSize || f == FieldQuestionsPerInterview
}

// Secret reports whether the field must never be echoed.
func (f Field) Secret() bool {
	return f == FieldCredential
}

func (f Field) valid() bool {
	return f >= 0 && f < numFields
}

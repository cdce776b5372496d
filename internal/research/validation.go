package research

import (
	"fmt"
	"strings"
)

// ValidateRequired checks that a required text field is not blank.
func ValidateRequired(label, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", label))
	}
	return nil
}

// ValidateSampleSize validates the number of interviews.
// Valid range is 1-20.
func ValidateSampleSize(c Count) error {
	return validateCount("sample size", c, MinSampleSize, MaxSampleSize)
}

// ValidateQuestionsPerInterview validates the number of questions asked in
// each interview. Valid range is 1-10.
func ValidateQuestionsPerInterview(c Count) error {
	return validateCount("questions per interview", c, MinQuestionsPerInterview, MaxQuestionsPerInterview)
}

func validateCount(label string, c Count, lo, hi int) error {
	if !c.Valid {
		return NewValidationError(fmt.Sprintf("%s must be a number", label))
	}
	if !c.InRange(lo, hi) {
		return NewValidationError(fmt.Sprintf("%s must be %d-%d, got %d", label, lo, hi, c.Value))
	}
	return nil
}

// ValidateParameters validates a complete request.
// Returns a slice of validation errors (empty if valid).
func ValidateParameters(p RequestParameters) []error {
	var errors []error

	if err := ValidateRequired("API key", p.Credential); err != nil {
		errors = append(errors, err)
	}

	if err := ValidateRequired("research topic", p.Topic); err != nil {
		errors = append(errors, err)
	}

	if err := ValidateRequired("target demographic", p.TargetDemographic); err != nil {
		errors = append(errors, err)
	}

	if err := ValidateSampleSize(p.SampleSize); err != nil {
		errors = append(errors, err)
	}

	if err := ValidateQuestionsPerInterview(p.QuestionsPerInterview); err != nil {
		errors = append(errors, err)
	}

	return errors
}

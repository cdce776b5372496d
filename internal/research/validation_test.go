package research

import "testing"

func TestValidateSampleSize(t *testing.T) {
	tests := []struct {
		count   Count
		wantErr bool
	}{
		{NewCount(1), false},
		{NewCount(20), false},
		{NewCount(0), true},
		{NewCount(21), true},
		{Count{}, true},
	}

	for _, tt := range tests {
		err := ValidateSampleSize(tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSampleSize(%s) error = %v, wantErr %v", tt.count, err, tt.wantErr)
		}
	}
}

func TestValidateQuestionsPerInterview(t *testing.T) {
	tests := []struct {
		count   Count
		wantErr bool
	}{
		{NewCount(1), false},
		{NewCount(10), false},
		{NewCount(11), true},
		{NewCount(-1), true},
		{Count{}, true},
	}

	for _, tt := range tests {
		err := ValidateQuestionsPerInterview(tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateQuestionsPerInterview(%s) error = %v, wantErr %v", tt.count, err, tt.wantErr)
		}
	}
}

func TestValidateParameters(t *testing.T) {
	if errs := ValidateParameters(testParams()); len(errs) != 0 {
		t.Errorf("ValidateParameters() = %v, want none", errs)
	}

	errs := ValidateParameters(RequestParameters{
		Topic:                 "  ",
		SampleSize:            ParseCount("x"),
		QuestionsPerInterview: NewCount(4),
	})
	// credential, topic, demographic, sample size
	if len(errs) != 4 {
		t.Errorf("ValidateParameters() returned %d errors, want 4: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !IsValidationError(err) {
			t.Errorf("%v should be a validation error", err)
		}
	}
}

package research

import (
	"encoding/json"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Count
		valid bool
	}{
		{"plain", "5", NewCount(5), true},
		{"padded", "  12 ", NewCount(12), true},
		{"zero", "0", NewCount(0), true},
		{"negative", "-3", NewCount(-3), true},
		{"empty", "", Count{}, false},
		{"letters", "abc", Count{}, false},
		{"decimal", "4.5", Count{}, false},
		{"trailing junk", "4x", Count{}, false},
		{"decimal is not truncated", "3.7", Count{}, false},
		{"numeric prefix is not taken", "5abc", Count{}, false},
		{"exponent", "1e1", Count{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCount(tt.raw)
			if got != tt.want {
				t.Errorf("ParseCount(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
			if got.Valid != tt.valid {
				t.Errorf("ParseCount(%q).Valid = %v, want %v", tt.raw, got.Valid, tt.valid)
			}
		})
	}
}

func TestCount_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Count `json:"a"`
		B Count `json:"b"`
	}{NewCount(7), ParseCount("abc")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"a":7,"b":null}` {
		t.Errorf("Marshal() = %s, want {\"a\":7,\"b\":null}", data)
	}

	var c Count
	if err := json.Unmarshal([]byte("null"), &c); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if c.Valid {
		t.Error("Unmarshal(null) should produce an invalid count")
	}
	if err := json.Unmarshal([]byte(`"x"`), &c); err == nil {
		t.Error("Unmarshal(string) should fail")
	}
}

func TestCount_String(t *testing.T) {
	if got := NewCount(3).String(); got != "3" {
		t.Errorf("String() = %q, want 3", got)
	}
	if got := (Count{}).String(); got != "NaN" {
		t.Errorf("String() = %q, want NaN", got)
	}
}

func TestTraits_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		items    int
		fromList bool
	}{
		{"list", `["curious","busy"]`, "curious, busy", 2, true},
		{"string", `"curious"`, "curious", 1, false},
		{"string with comma", `"curious, busy"`, "curious, busy", 1, false},
		{"empty list", `[]`, "", 0, true},
		{"null", `null`, "", 0, false},
		{"mixed list", `["calm",3,null]`, "calm, 3, ", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Traits
			if err := json.Unmarshal([]byte(tt.input), &tr); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := tr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if len(tr.Items) != tt.items {
				t.Errorf("len(Items) = %d, want %d", len(tr.Items), tt.items)
			}
			if tr.FromList != tt.fromList {
				t.Errorf("FromList = %v, want %v", tr.FromList, tt.fromList)
			}
		})
	}
}

func TestTraits_UnmarshalRejectsObject(t *testing.T) {
	var tr Traits
	if err := json.Unmarshal([]byte(`{"a":1}`), &tr); err == nil {
		t.Error("Unmarshal(object) should fail")
	}
}

func TestTraits_MarshalKeepsShape(t *testing.T) {
	tests := []struct {
		traits Traits
		want   string
	}{
		{TraitList("a", "b"), `["a","b"]`},
		{TraitText("a, b"), `"a, b"`},
		{TraitList("a"), `["a"]`},
		{Traits{}, `[]`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.traits)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%+v) = %s, want %s", tt.traits, data, tt.want)
		}
	}
}

func TestAge_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  Age
	}{
		{`34`, "34"},
		{`"34"`, "34"},
		{`"mid-thirties"`, "mid-thirties"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var a Age
		if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
		}
		if a != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, a, tt.want)
		}
	}
}

func TestAge_Marshal(t *testing.T) {
	data, _ := json.Marshal(Age("34"))
	if string(data) != "34" {
		t.Errorf("Marshal(34) = %s, want 34", data)
	}
	data, _ = json.Marshal(Age("mid-thirties"))
	if string(data) != `"mid-thirties"` {
		t.Errorf("Marshal(mid-thirties) = %s", data)
	}
}

func TestResult_HasSynthesis(t *testing.T) {
	var nilResult *Result
	if nilResult.HasSynthesis() {
		t.Error("nil result should have no synthesis")
	}
	if (&Result{}).HasSynthesis() {
		t.Error("empty synthesis should count as absent")
	}
	if !(&Result{Synthesis: "x"}).HasSynthesis() {
		t.Error("non-empty synthesis should be present")
	}
}

func TestNewRequestBody(t *testing.T) {
	body := NewRequestBody(RequestParameters{
		Credential:            "k",
		Topic:                 "coffee",
		TargetDemographic:     "students",
		SampleSize:            NewCount(5),
		QuestionsPerInterview: NewCount(3),
	})

	data, err := body.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `{"api_key":"k","research_topic":"coffee","target_demographic":"students","sample_size":5,"num_questions":3}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}
}

func TestNewRequestBody_NotANumber(t *testing.T) {
	body := NewRequestBody(RequestParameters{
		Credential:            "k",
		Topic:                 "t",
		TargetDemographic:     "d",
		SampleSize:            ParseCount("abc"),
		QuestionsPerInterview: ParseCount("4"),
	})

	data, _ := body.Encode()
	want := `{"api_key":"k","research_topic":"t","target_demographic":"d","sample_size":null,"num_questions":4}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}
}

package research

import "encoding/json"

// RequestBody is the JSON body POSTed to the research endpoint.
// Field names are fixed by the service.
type RequestBody struct {
	APIKey            string `json:"api_key"`
	ResearchTopic     string `json:"research_topic"`
	TargetDemographic string `json:"target_demographic"`
	SampleSize        Count  `json:"sample_size"`
	NumQuestions      Count  `json:"num_questions"`
}

// NewRequestBody maps request parameters onto the wire body.
func NewRequestBody(p RequestParameters) RequestBody {
	return RequestBody{
		APIKey:            p.Credential,
		ResearchTopic:     p.Topic,
		TargetDemographic: p.TargetDemographic,
		SampleSize:        p.SampleSize,
		NumQuestions:      p.QuestionsPerInterview,
	}
}

// Encode returns the JSON encoding of the body.
func (b RequestBody) Encode() ([]byte, error) {
	return json.Marshal(b)
}

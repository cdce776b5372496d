// Package research provides the data model and HTTP client for a remote
// research-generation service.
//
// The service accepts one request describing a research topic, a target
// demographic and the shape of the study (number of synthetic interviews and
// questions per interview). It answers with a synthesis of the interviews,
// the questionnaire that was used and the full transcripts.
//
// # Wire Format
//
// Requests are POSTed as JSON to /api/research:
//
//	{
//	  "api_key": "...",
//	  "research_topic": "Impact of remote work on commuting",
//	  "target_demographic": "Office workers aged 25-45",
//	  "sample_size": 4,
//	  "num_questions": 4
//	}
//
// A successful response carries "success": true plus optional "synthesis",
// "questions" and "interviews" fields. An application-level failure carries
// "success": false and an optional "error" string. Any other outcome
// (network failure, non-2xx status, undecodable body) is a transport failure
// and is returned as an *Error.
//
// # Persona Traits
//
// The service is not consistent about persona traits: some responses carry a
// list of strings, some a single descriptive string. Traits are normalized
// while decoding, so callers always see a []string (see Traits).
//
// # Usage Example
//
//	client := research.NewClient("http://localhost:8000")
//
//	params := research.RequestParameters{
//	    Credential:            apiKey,
//	    Topic:                 "Impact of aging population on healthcare",
//	    TargetDemographic:     "Healthcare professionals aged 30-50",
//	    SampleSize:            research.NewCount(4),
//	    QuestionsPerInterview: research.NewCount(4),
//	}
//
//	resp, err := client.Research(ctx, params)
//	if err != nil {
//	    fmt.Println(research.FailureMessage(err))
//	    return
//	}
//	if !resp.Success {
//	    fmt.Println(resp.FailureReason())
//	    return
//	}
//	fmt.Println(resp.Synthesis)
//
// The client never retries and enforces no timeout unless SetTimeout is
// called.
package research

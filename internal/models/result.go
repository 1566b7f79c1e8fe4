package models

// AnalyzeJSONRequest is the JSON submission body. Video carries the file
// as a "data:<mime>;base64,<payload>" data URL.
type AnalyzeJSONRequest struct {
	Video          string `json:"video"`
	FileName       string `json:"file_name"`
	JobDescription string `json:"job_description"`
}

// AnalyzeResponse is returned from a submission.
type AnalyzeResponse struct {
	ID       string             `json:"id"`
	State    string             `json:"state"`
	Analysis *InterviewAnalysis `json:"analysis,omitempty"`
}

// SessionResponse describes the current analysis slot.
type SessionResponse struct {
	State    string             `json:"state"`
	ID       string             `json:"id,omitempty"`
	Error    string             `json:"error,omitempty"`
	Analysis *InterviewAnalysis `json:"analysis,omitempty"`
}

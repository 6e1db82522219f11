package models

// RetentionRequest is the body of a set-retention call. Days is a pointer so
// an omitted value can fall back to the configured default period while an
// explicit zero is still rejected.
type RetentionRequest struct {
	Days *int `json:"days,omitempty"`
}

// ConsentRequest is the body of a set-consent call.
type ConsentRequest struct {
	Given bool `json:"given"`
}

// AddSubjectResponse is returned after a subject has been registered.
type AddSubjectResponse struct {
	ID int64 `json:"id"`
}

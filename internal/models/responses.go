package models

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// APIResponse is the body shape the backend uses for both success and failure.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Toast is a transient notification shown to the user.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// SubmissionResponse answers JSON-mode form posts.
type SubmissionResponse struct {
	Status      string            `json:"status"`
	Toasts      []Toast           `json:"toasts,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Redirect    string            `json:"redirect,omitempty"`
}

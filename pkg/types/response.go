package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PagedEnvelope struct {
	Data       any  `json:"data"`
	Pagination Page `json:"pagination"`
}

type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

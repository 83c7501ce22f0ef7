package response

// APIResponse is the envelope of every JSON body. Data is always present so
// an empty view encodes as [] and not as a missing field.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

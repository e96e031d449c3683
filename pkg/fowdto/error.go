package fowdto

// ErrorResponse is the JSON body for non-2xx API replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

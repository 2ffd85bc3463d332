package server

// HTTPError is a generic error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

// ChatRequest is the inbound chat payload. JWTToken is optional: anonymous
// callers can browse the catalog but not touch cart or orders.
type ChatRequest struct {
	UserInput string `json:"user_input"`
	JWTToken  string `json:"jwt_token"`
}

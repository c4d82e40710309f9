package dto

// ChatRequest carries a message for the assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's canned reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

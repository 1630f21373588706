package stats

import "time"

// Stats is the running parse and token accounting for one user.
type Stats struct {
	UserID           string    `json:"userId"`
	ResumesParsed    int64     `json:"resumesParsed"`
	PromptTokens     int64     `json:"tokensPrompt"`
	CompletionTokens int64     `json:"tokensCompletion"`
	TotalTokens      int64     `json:"totalTokens"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

package model

import "time"

// Trend is a category-scoped pair of competing options open for voting.
// JSON field names are snake_case to match the frontend contract.
type Trend struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	OptionA         string    `json:"option_a"`
	OptionB         string    `json:"option_b"`
	OptionAImageURL *string   `json:"option_a_image_url"`
	OptionBImageURL *string   `json:"option_b_image_url"`
	VotesA          int       `json:"votes_a"`
	VotesB          int       `json:"votes_b"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	TrendID string `json:"trendId"`
	Choice  string `json:"choice"`
}

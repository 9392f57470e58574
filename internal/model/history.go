package model

import "time"

// HistoryItem is one append-only ledger entry. One entry is written for each
// option of every committed trend; entries are never mutated or deleted.
type HistoryItem struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	DesignText string    `json:"design_text"`
	CreatedAt  time.Time `json:"created_at"`
}

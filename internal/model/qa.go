package model

import "time"

// QAPair is one answered question. Pairs are immutable once created.
type QAPair struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Timestamp  time.Time `json:"timestamp"`
}

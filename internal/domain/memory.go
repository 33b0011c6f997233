package domain

import "time"

// MemoryItem records one past interaction with the recommendation agent.
type MemoryItem struct {
	Timestamp     time.Time `json:"timestamp"`
	Context       string    `json:"context"`
	ActionTaken   string    `json:"action_taken"`
	SuccessRating *float64  `json:"success_rating,omitempty"`
}

// MemoryOutput is a relevance-ranked recall with aggregate insights.
type MemoryOutput struct {
	RelevantMemories []MemoryItem
	PatternInsights  map[string]float64
}

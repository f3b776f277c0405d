package packets

import "github.com/jummah-prayer/server/internal/dhikr"

// DhikrItem is one list entry: the fixed definition plus the user's
// running count.
type DhikrItem struct {
	Index int `json:"index"`
	Count int `json:"count"`
	dhikr.Definition
}

type ListResponse struct {
	Adhkar []DhikrItem `json:"adhkar"`
}

type IncrementResponse struct {
	Index       int  `json:"index"`
	Count       int  `json:"count"`
	Goal        int  `json:"goal"`
	GoalReached bool `json:"goalReached"`
}

type CommitRequest struct {
	Count *int `json:"count" binding:"required"`
}

type HistoryResponse struct {
	Index   int                  `json:"index"`
	Entries []dhikr.HistoryEntry `json:"entries"`
}

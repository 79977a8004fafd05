package domain

// ReviewStatsDay aggregates review activity for one calendar day (YYYY-MM-DD).
// AllDueCompleted is tri-state: nil means unknown.
type ReviewStatsDay struct {
	Day             string `json:"day"`
	Reviews         int    `json:"reviews"`
	Correct         int    `json:"correct"`
	Lapses          int    `json:"lapses"`
	AllDueCompleted *bool  `json:"all_due_completed"`
}

// ReviewStatsUpdate is a write against a single day. Nil fields are "not
// provided". With Increment set, counters are added to the stored values
// instead of replacing them.
type ReviewStatsUpdate struct {
	Day             string
	Reviews         *int
	Correct         *int
	Lapses          *int
	AllDueCompleted *bool
	Increment       bool
}

package production

// Record is one persisted production snapshot row, unique on (team_id, date).
// The whole set is recreated on every successful sync run.
type Record struct {
	TeamID int64
	Date   string // normalized YYYY-MM-DD
	Value  float64
}

// Key identifies the aggregation bucket a raw row folds into.
type Key struct {
	TeamID int64
	Date   string
}

func (r Record) Key() Key {
	return Key{TeamID: r.TeamID, Date: r.Date}
}

// SyncReport carries the pipeline counts surfaced to the caller.
type SyncReport struct {
	Inserted      int
	Ignored       int
	TotalReceived int
}

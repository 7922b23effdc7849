package repokit

// InsertOutcome reports what a conditional insert did.
// Both Inserted and AlreadyPresent mean the row exists when the call returns;
// callers that only care about convergence treat them the same.
type InsertOutcome uint8

const (
	// Inserted means this call created the row
	Inserted InsertOutcome = iota + 1
	// AlreadyPresent means another writer got there first
	AlreadyPresent
)

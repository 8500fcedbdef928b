package models

// Fact is a free-text trivia entry. Facts are consumed exactly once:
// served by /fact and then deleted.
type Fact struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
}

package session

// Store persists feedback and personalization keywords between sessions.
// The current build ships only NoopStore; the interface is the seam a real
// database-backed implementation plugs into.
type Store interface {
	// SaveFeedback records one feedback entry together with the content it
	// criticized.
	SaveFeedback(userID, content, feedback string, keywords []string) error

	// UserKeywords returns the topics the user asked to emphasize.
	UserKeywords(userID string) ([]string, error)
}

// NoopStore discards feedback and knows no keywords.
type NoopStore struct{}

func (NoopStore) SaveFeedback(userID, content, feedback string, keywords []string) error {
	return nil
}

func (NoopStore) UserKeywords(userID string) ([]string, error) {
	return nil, nil
}

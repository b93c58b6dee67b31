package repository

import (
	"strings"

	"github.com/rookgm/foodorder/internal/models"
)

const pgErrUniqueViolationCode = "23505"

// joinFailureMessages serializes failure messages into one column
func joinFailureMessages(failureMessages []string) string {
	return strings.Join(failureMessages, models.FailureMessagesDelimiter)
}

// splitFailureMessages restores failure messages from persisted form
func splitFailureMessages(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, models.FailureMessagesDelimiter)
}

package models

import "github.com/google/uuid"

// TokenPayload is authenticated customer identity extracted from a token
type TokenPayload struct {
	CustomerID uuid.UUID
}

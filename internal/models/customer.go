package models

import "github.com/google/uuid"

// Customer is read-only customer projection used to validate order placement
type Customer struct {
	ID        uuid.UUID
	Username  string
	FirstName string
	LastName  string
}

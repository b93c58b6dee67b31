package models

import (
	"time"

	"github.com/google/uuid"
)

// payment status
const (
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusCancelled = "CANCELLED"
	PaymentStatusFailed    = "FAILED"
)

// credit history transaction type
const (
	TransactionTypeCredit = "CREDIT"
	TransactionTypeDebit  = "DEBIT"
)

// Payment is payment aggregate, one per order
type Payment struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Price      Money
	Status     string
	CreatedAt  time.Time
}

// InitializePayment assigns identifier and creation time once
func (p *Payment) InitializePayment() {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
}

// ValidatePayment returns price violations as failure messages
func (p *Payment) ValidatePayment() []string {
	if !p.Price.IsGreaterThanZero() {
		return []string{"Total price must be greater than zero!"}
	}
	return nil
}

// UpdateStatus sets payment status
func (p *Payment) UpdateStatus(status string) {
	p.Status = status
}

// CreditEntry is current prepaid balance of a customer.
// It must reconcile with the credit history after every commit
// and never go negative.
type CreditEntry struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	TotalCreditAmount Money
}

// AddCreditAmount increases balance
func (ce *CreditEntry) AddCreditAmount(amount Money) {
	ce.TotalCreditAmount = ce.TotalCreditAmount.Add(amount)
}

// SubtractCreditAmount decreases balance
func (ce *CreditEntry) SubtractCreditAmount(amount Money) {
	ce.TotalCreditAmount = ce.TotalCreditAmount.Subtract(amount)
}

// CreditHistory is append-only ledger record
type CreditHistory struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     Money
	Type       string
}

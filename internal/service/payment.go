package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// PaymentRepository is interface for interacting with payment and ledger data
type PaymentRepository interface {
	// GetPaymentByOrderID returns payment by order id
	GetPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	// WithCustomerLedger locks the customer credit entry, loads the
	// credit history and runs fn inside one transaction. The returned
	// payment is always persisted; when fn also returns a history
	// record, the mutated entry is saved and the record appended.
	WithCustomerLedger(ctx context.Context, customerID uuid.UUID,
		fn func(entry *models.CreditEntry, histories []models.CreditHistory) (*models.Payment, *models.CreditHistory, error)) error
}

// PaymentDomainService enforces payment and ledger invariants.
// It mutates the supplied aggregates in memory; persistence is the
// caller's job. The returned history record is nil on failure paths,
// signalling that no ledger mutation happened.
type PaymentDomainService struct{}

// ValidateAndInitializePayment validates price, balance and ledger
// consistency. On success it debits the entry and completes the
// payment; on failure it marks the payment FAILED.
func (PaymentDomainService) ValidateAndInitializePayment(payment *models.Payment,
	entry *models.CreditEntry, histories []models.CreditHistory) (models.Event, *models.CreditHistory) {

	failureMessages := payment.ValidatePayment()
	payment.InitializePayment()

	if payment.Price.IsGreaterThan(entry.TotalCreditAmount) {
		logger.Log.Error("customer doesn't have enough credit for payment",
			zap.String("customer_id", payment.CustomerID.String()))
		failureMessages = append(failureMessages,
			fmt.Sprintf("Customer with id [%s] doesn't have enough credit for payment!", payment.CustomerID))
	}

	failureMessages = append(failureMessages, validateCreditHistory(entry, histories)...)

	if len(failureMessages) > 0 {
		logger.Log.Error("payment initiation failed for order",
			zap.String("order_id", payment.OrderID.String()))
		payment.UpdateStatus(models.PaymentStatusFailed)
		return models.NewPaymentEvent(models.EventKindPaymentFailed, payment, failureMessages), nil
	}

	entry.SubtractCreditAmount(payment.Price)
	history := newCreditHistory(payment, models.TransactionTypeDebit)
	payment.UpdateStatus(models.PaymentStatusCompleted)

	logger.Log.Debug("payment is initiated for order", zap.String("order_id", payment.OrderID.String()))
	return models.NewPaymentEvent(models.EventKindPaymentCompleted, payment, nil), history
}

// ValidateAndCancelPayment reverses a previously completed debit. When
// validation failures already exist the payment is marked FAILED and
// the ledger stays untouched, making redelivered cancels a no-op
// against an already-failed payment.
func (PaymentDomainService) ValidateAndCancelPayment(payment *models.Payment,
	entry *models.CreditEntry, histories []models.CreditHistory) (models.Event, *models.CreditHistory) {

	failureMessages := payment.ValidatePayment()

	if len(failureMessages) > 0 {
		logger.Log.Error("payment cancellation failed for order",
			zap.String("order_id", payment.OrderID.String()))
		payment.UpdateStatus(models.PaymentStatusFailed)
		return models.NewPaymentEvent(models.EventKindPaymentFailed, payment, failureMessages), nil
	}

	entry.AddCreditAmount(payment.Price)
	history := newCreditHistory(payment, models.TransactionTypeCredit)
	payment.UpdateStatus(models.PaymentStatusCancelled)

	logger.Log.Debug("payment is cancelled for order", zap.String("order_id", payment.OrderID.String()))
	return models.NewPaymentEvent(models.EventKindPaymentCancelled, payment, nil), history
}

// validateCreditHistory recomputes the ledger and checks it reconciles
// with the credit entry. A mismatch is ledger corruption, not a
// silently ignorable condition.
func validateCreditHistory(entry *models.CreditEntry, histories []models.CreditHistory) []string {
	var failureMessages []string

	totalCredit := models.ZeroMoney
	totalDebit := models.ZeroMoney
	for _, h := range histories {
		switch h.Type {
		case models.TransactionTypeCredit:
			totalCredit = totalCredit.Add(h.Amount)
		case models.TransactionTypeDebit:
			totalDebit = totalDebit.Add(h.Amount)
		}
	}

	if totalDebit.IsGreaterThan(totalCredit) {
		logger.Log.Error("customer doesn't have enough credit according to credit history",
			zap.String("customer_id", entry.CustomerID.String()))
		failureMessages = append(failureMessages,
			fmt.Sprintf("Customer with id [%s] doesn't have enough credit according to credit history", entry.CustomerID))
	}

	if entry.TotalCreditAmount != totalCredit.Subtract(totalDebit) {
		logger.Log.Error("credit history total is not equal to current credit",
			zap.String("customer_id", entry.CustomerID.String()))
		failureMessages = append(failureMessages,
			fmt.Sprintf("Credit history total is not equal to current credit for customer id [%s]!", entry.CustomerID))
	}

	return failureMessages
}

func newCreditHistory(payment *models.Payment, transactionType string) *models.CreditHistory {
	return &models.CreditHistory{
		ID:         uuid.New(),
		CustomerID: payment.CustomerID,
		Amount:     payment.Price,
		Type:       transactionType,
	}
}

// PaymentService implements the payment side of the order saga
type PaymentService struct {
	domain PaymentDomainService
	repo   PaymentRepository
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(repo PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// CompletePayment settles the payment for an order and returns the
// resulting payment event. A redelivered request finds the payment
// already persisted and re-emits its verdict without touching the
// ledger, so the debit happens at most once per order.
func (ps *PaymentService) CompletePayment(ctx context.Context, req models.PaymentRequest) (models.Event, error) {
	logger.Log.Debug("received payment complete request for order", zap.String("order_id", req.OrderID.String()))

	existing, err := ps.repo.GetPaymentByOrderID(ctx, req.OrderID)
	if err == nil {
		logger.Log.Warn("payment for order is already settled",
			zap.String("order_id", req.OrderID.String()), zap.String("status", existing.Status))
		return settledPaymentEvent(existing), nil
	}
	if !errors.Is(err, models.ErrDataNotFound) {
		return models.EventNone, err
	}

	payment := &models.Payment{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Price:      models.MoneyFromFloat(req.Price),
	}

	var event models.Event
	err = ps.repo.WithCustomerLedger(ctx, req.CustomerID,
		func(entry *models.CreditEntry, histories []models.CreditHistory) (*models.Payment, *models.CreditHistory, error) {
			ev, history := ps.domain.ValidateAndInitializePayment(payment, entry, histories)
			event = ev
			return payment, history, nil
		})
	if err != nil {
		return models.EventNone, err
	}

	return event, nil
}

// settledPaymentEvent rebuilds the event matching a verdict that was
// already persisted for the order
func settledPaymentEvent(payment *models.Payment) models.Event {
	switch payment.Status {
	case models.PaymentStatusCompleted:
		return models.NewPaymentEvent(models.EventKindPaymentCompleted, payment, nil)
	case models.PaymentStatusCancelled:
		return models.NewPaymentEvent(models.EventKindPaymentCancelled, payment, nil)
	}
	return models.NewPaymentEvent(models.EventKindPaymentFailed, payment, nil)
}

// CancelPayment reverses a previously completed payment and returns
// the resulting payment event
func (ps *PaymentService) CancelPayment(ctx context.Context, req models.PaymentRequest) (models.Event, error) {
	logger.Log.Debug("received payment cancel request for order", zap.String("order_id", req.OrderID.String()))

	payment, err := ps.repo.GetPaymentByOrderID(ctx, req.OrderID)
	if err != nil {
		return models.EventNone, fmt.Errorf("payment with order id [%s] could not be found: %w", req.OrderID, err)
	}

	var event models.Event
	err = ps.repo.WithCustomerLedger(ctx, payment.CustomerID,
		func(entry *models.CreditEntry, histories []models.CreditHistory) (*models.Payment, *models.CreditHistory, error) {
			ev, history := ps.domain.ValidateAndCancelPayment(payment, entry, histories)
			event = ev
			return payment, history, nil
		})
	if err != nil {
		return models.EventNone, err
	}

	return event, nil
}

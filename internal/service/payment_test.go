package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentRepo keeps one customer ledger in memory and mimics the
// transactional persistence rules of the real repository
type fakePaymentRepo struct {
	entry     *models.CreditEntry
	histories []models.CreditHistory
	payments  map[uuid.UUID]*models.Payment
}

func newFakePaymentRepo(entry *models.CreditEntry, histories ...models.CreditHistory) *fakePaymentRepo {
	return &fakePaymentRepo{
		entry:     entry,
		histories: histories,
		payments:  make(map[uuid.UUID]*models.Payment),
	}
}

func (r *fakePaymentRepo) GetPaymentByOrderID(_ context.Context, orderID uuid.UUID) (*models.Payment, error) {
	payment, ok := r.payments[orderID]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) WithCustomerLedger(_ context.Context, customerID uuid.UUID,
	fn func(entry *models.CreditEntry, histories []models.CreditHistory) (*models.Payment, *models.CreditHistory, error)) error {

	if r.entry == nil || r.entry.CustomerID != customerID {
		return fmt.Errorf("could not find credit entry for customer [%s]: %w", customerID, models.ErrDataNotFound)
	}

	payment, history, err := fn(r.entry, r.histories)
	if err != nil {
		return err
	}

	r.payments[payment.OrderID] = payment
	if history != nil {
		r.histories = append(r.histories, *history)
	}
	return nil
}

func testCreditEntry(amount float64) *models.CreditEntry {
	return &models.CreditEntry{
		ID:                uuid.New(),
		CustomerID:        testCustomerID,
		TotalCreditAmount: models.MoneyFromFloat(amount),
	}
}

func creditRecord(amount float64) models.CreditHistory {
	return models.CreditHistory{
		ID:         uuid.New(),
		CustomerID: testCustomerID,
		Amount:     models.MoneyFromFloat(amount),
		Type:       models.TransactionTypeCredit,
	}
}

func paymentRequest(price float64) models.PaymentRequest {
	return models.PaymentRequest{
		OrderID:    testOrderID,
		CustomerID: testCustomerID,
		Price:      price,
		Status:     models.PaymentOrderStatusPending,
	}
}

func TestPaymentService_CompletePayment(t *testing.T) {
	repo := newFakePaymentRepo(testCreditEntry(500.00), creditRecord(500.00))
	svc := NewPaymentService(repo)

	event, err := svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)

	assert.Equal(t, models.EventKindPaymentCompleted, event.Kind)
	assert.Equal(t, models.PaymentStatusCompleted, event.Payment.Status)
	assert.Empty(t, event.FailureMessages)

	// balance is debited and a DEBIT record appended
	assert.Equal(t, models.MoneyFromFloat(300.00), repo.entry.TotalCreditAmount)
	require.Len(t, repo.histories, 2)
	assert.Equal(t, models.TransactionTypeDebit, repo.histories[1].Type)
	assert.Equal(t, models.MoneyFromFloat(200.00), repo.histories[1].Amount)

	// payment is persisted under its order id
	saved, err := repo.GetPaymentByOrderID(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, saved.Status)
}

func TestPaymentService_CompletePayment_Failures(t *testing.T) {
	tests := []struct {
		name      string
		entry     *models.CreditEntry
		histories []models.CreditHistory
		price     float64
		wantMsgs  []string
	}{
		{
			name:      "insufficient_credit",
			entry:     testCreditEntry(100.00),
			histories: []models.CreditHistory{creditRecord(100.00)},
			price:     200.00,
			wantMsgs: []string{
				fmt.Sprintf("Customer with id [%s] doesn't have enough credit for payment!", testCustomerID),
			},
		},
		{
			name:      "entry_does_not_reconcile_with_history",
			entry:     testCreditEntry(500.00),
			histories: []models.CreditHistory{creditRecord(300.00)},
			price:     200.00,
			wantMsgs: []string{
				fmt.Sprintf("Credit history total is not equal to current credit for customer id [%s]!", testCustomerID),
			},
		},
		{
			name:  "debits_exceed_credits_in_history",
			entry: testCreditEntry(500.00),
			histories: []models.CreditHistory{
				{ID: uuid.New(), CustomerID: testCustomerID, Amount: models.MoneyFromFloat(100.00), Type: models.TransactionTypeDebit},
			},
			price: 200.00,
			wantMsgs: []string{
				fmt.Sprintf("Customer with id [%s] doesn't have enough credit according to credit history", testCustomerID),
				fmt.Sprintf("Credit history total is not equal to current credit for customer id [%s]!", testCustomerID),
			},
		},
		{
			name:      "non_positive_price",
			entry:     testCreditEntry(500.00),
			histories: []models.CreditHistory{creditRecord(500.00)},
			price:     0,
			wantMsgs:  []string{"Total price must be greater than zero!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePaymentRepo(tt.entry, tt.histories...)
			svc := NewPaymentService(repo)

			balanceBefore := tt.entry.TotalCreditAmount
			recordsBefore := len(tt.histories)

			event, err := svc.CompletePayment(context.Background(), paymentRequest(tt.price))
			require.NoError(t, err)

			assert.Equal(t, models.EventKindPaymentFailed, event.Kind)
			assert.Equal(t, models.PaymentStatusFailed, event.Payment.Status)
			assert.Equal(t, tt.wantMsgs, event.FailureMessages)

			// failed payment leaves the ledger untouched but is persisted
			assert.Equal(t, balanceBefore, repo.entry.TotalCreditAmount)
			assert.Len(t, repo.histories, recordsBefore)
			_, err = repo.GetPaymentByOrderID(context.Background(), testOrderID)
			assert.NoError(t, err)
		})
	}
}

func TestPaymentService_CompletePayment_Redelivered(t *testing.T) {
	repo := newFakePaymentRepo(testCreditEntry(500.00), creditRecord(500.00))
	svc := NewPaymentService(repo)

	_, err := svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)
	require.Equal(t, models.MoneyFromFloat(300.00), repo.entry.TotalCreditAmount)

	// the same request again must re-emit the verdict without a second debit
	event, err := svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)

	assert.Equal(t, models.EventKindPaymentCompleted, event.Kind)
	assert.Equal(t, models.PaymentStatusCompleted, event.Payment.Status)
	assert.Equal(t, models.MoneyFromFloat(300.00), repo.entry.TotalCreditAmount)
	assert.Len(t, repo.histories, 2)
}

func TestPaymentService_CompletePayment_RedeliveredAfterFailure(t *testing.T) {
	repo := newFakePaymentRepo(testCreditEntry(100.00), creditRecord(100.00))
	svc := NewPaymentService(repo)

	event, err := svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)
	require.Equal(t, models.EventKindPaymentFailed, event.Kind)

	event, err = svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)

	assert.Equal(t, models.EventKindPaymentFailed, event.Kind)
	assert.Equal(t, models.PaymentStatusFailed, event.Payment.Status)
	assert.Equal(t, models.MoneyFromFloat(100.00), repo.entry.TotalCreditAmount)
	assert.Len(t, repo.histories, 1)
}

func TestPaymentService_CancelPayment(t *testing.T) {
	repo := newFakePaymentRepo(testCreditEntry(500.00), creditRecord(500.00))
	svc := NewPaymentService(repo)

	// complete then cancel must restore the original balance
	_, err := svc.CompletePayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)
	require.Equal(t, models.MoneyFromFloat(300.00), repo.entry.TotalCreditAmount)

	event, err := svc.CancelPayment(context.Background(), paymentRequest(200.00))
	require.NoError(t, err)

	assert.Equal(t, models.EventKindPaymentCancelled, event.Kind)
	assert.Equal(t, models.PaymentStatusCancelled, event.Payment.Status)
	assert.Equal(t, models.MoneyFromFloat(500.00), repo.entry.TotalCreditAmount)

	require.Len(t, repo.histories, 3)
	assert.Equal(t, models.TransactionTypeCredit, repo.histories[2].Type)
	assert.Equal(t, models.MoneyFromFloat(200.00), repo.histories[2].Amount)
}

func TestPaymentService_CancelPayment_UnknownOrder(t *testing.T) {
	svc := NewPaymentService(newFakePaymentRepo(testCreditEntry(500.00)))

	_, err := svc.CancelPayment(context.Background(), paymentRequest(200.00))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataNotFound)
	assert.Contains(t, err.Error(), fmt.Sprintf("payment with order id [%s] could not be found", testOrderID))
}

func TestPaymentService_CancelPayment_InvalidPrice(t *testing.T) {
	repo := newFakePaymentRepo(testCreditEntry(500.00), creditRecord(500.00))
	repo.payments[testOrderID] = &models.Payment{
		ID:         uuid.New(),
		OrderID:    testOrderID,
		CustomerID: testCustomerID,
		Price:      models.ZeroMoney,
		Status:     models.PaymentStatusCompleted,
	}
	svc := NewPaymentService(repo)

	event, err := svc.CancelPayment(context.Background(), paymentRequest(0))
	require.NoError(t, err)

	// prior validation failures mark the payment FAILED without touching the ledger
	assert.Equal(t, models.EventKindPaymentFailed, event.Kind)
	assert.Equal(t, []string{"Total price must be greater than zero!"}, event.FailureMessages)
	assert.Equal(t, models.MoneyFromFloat(500.00), repo.entry.TotalCreditAmount)
	assert.Len(t, repo.histories, 1)
}

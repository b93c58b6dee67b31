package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/repository/postgres"
)

const (
	upsertPaymentQuery = `
						INSERT INTO payments (id, order_id, customer_id, price, status, created_at)
						VALUES ($1, $2, $3, $4, $5, $6)
						ON CONFLICT (order_id) DO UPDATE SET status = EXCLUDED.status
`
	selectPaymentByOrderIDQuery = `
						SELECT id, order_id, customer_id, price, status, created_at FROM payments
						WHERE order_id = $1
`
	selectCreditEntryForUpdateQuery = `
						SELECT id, customer_id, total_credit_amount FROM credit_entries
						WHERE customer_id = $1
						FOR UPDATE
`
	selectCreditHistoriesQuery = `
						SELECT id, customer_id, amount, type FROM credit_histories
						WHERE customer_id = $1
`
	updateCreditEntryQuery = `
						UPDATE credit_entries
						SET total_credit_amount = $1
						WHERE customer_id = $2
`
	insertCreditHistoryQuery = `
						INSERT INTO credit_histories (id, customer_id, amount, type)
						VALUES ($1, $2, $3, $4)
`
)

// PaymentRepository implements service.PaymentRepository interface
type PaymentRepository struct {
	db *postgres.DB
}

// NewPaymentRepository creates new PaymentRepository instance
func NewPaymentRepository(db *postgres.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetPaymentByOrderID returns payment by order id
func (pr *PaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	payment := models.Payment{}
	var price int64

	err := pr.db.QueryRow(ctx, selectPaymentByOrderIDQuery, orderID).
		Scan(&payment.ID, &payment.OrderID, &payment.CustomerID, &price, &payment.Status, &payment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	payment.Price = models.NewMoney(price)
	return &payment, nil
}

// WithCustomerLedger locks the customer credit entry, loads the credit
// history and runs fn inside one transaction. The returned payment is
// always persisted; when fn also returns a history record, the mutated
// entry is saved and the record appended. The row lock serializes
// concurrent payment operations for the same customer.
func (pr *PaymentRepository) WithCustomerLedger(ctx context.Context, customerID uuid.UUID,
	fn func(entry *models.CreditEntry, histories []models.CreditHistory) (*models.Payment, *models.CreditHistory, error)) error {

	return pr.db.WithinTx(ctx, func(tx pgx.Tx) error {
		entry := models.CreditEntry{}
		var total int64

		err := tx.QueryRow(ctx, selectCreditEntryForUpdateQuery, customerID).
			Scan(&entry.ID, &entry.CustomerID, &total)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("could not find credit entry for customer [%s]: %w", customerID, models.ErrDataNotFound)
			}
			return err
		}
		entry.TotalCreditAmount = models.NewMoney(total)

		histories, err := queryCreditHistories(ctx, tx, customerID)
		if err != nil {
			return err
		}

		payment, history, err := fn(&entry, histories)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, upsertPaymentQuery,
			payment.ID, payment.OrderID, payment.CustomerID,
			payment.Price.Cents(), payment.Status, payment.CreatedAt)
		if err != nil {
			return err
		}

		if history == nil {
			return nil
		}

		_, err = tx.Exec(ctx, updateCreditEntryQuery, entry.TotalCreditAmount.Cents(), entry.CustomerID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insertCreditHistoryQuery,
			history.ID, history.CustomerID, history.Amount.Cents(), history.Type)
		return err
	})
}

func queryCreditHistories(ctx context.Context, tx pgx.Tx, customerID uuid.UUID) ([]models.CreditHistory, error) {
	rows, err := tx.Query(ctx, selectCreditHistoriesQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var histories []models.CreditHistory

	for rows.Next() {
		history := models.CreditHistory{}
		var amount int64
		if err := rows.Scan(&history.ID, &history.CustomerID, &amount, &history.Type); err != nil {
			return nil, err
		}
		history.Amount = models.NewMoney(amount)
		histories = append(histories, history)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return histories, nil
}

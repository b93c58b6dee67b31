package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/repository/postgres"
)

const selectCustomerByIDQuery = `
						SELECT id, username, first_name, last_name FROM customers
						WHERE id = $1
`

// CustomerRepository implements service.CustomerRepository interface
type CustomerRepository struct {
	db *postgres.DB
}

// NewCustomerRepository creates new CustomerRepository instance
func NewCustomerRepository(db *postgres.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetCustomerByID returns customer by id
func (cr *CustomerRepository) GetCustomerByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	customer := models.Customer{}
	err := cr.db.QueryRow(ctx, selectCustomerByIDQuery, customerID).
		Scan(&customer.ID, &customer.Username, &customer.FirstName, &customer.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &customer, nil
}

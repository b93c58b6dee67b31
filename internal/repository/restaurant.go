package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/repository/postgres"
)

const (
	selectRestaurantByIDQuery = `
						SELECT id, active FROM restaurants
						WHERE id = $1
`
	selectRestaurantProductsQuery = `
						SELECT product_id, name, price, available FROM restaurant_products
						WHERE restaurant_id = $1 AND product_id = ANY($2::uuid[])
`
)

// RestaurantRepository implements service.RestaurantRepository interface
type RestaurantRepository struct {
	db *postgres.DB
}

// NewRestaurantRepository creates new RestaurantRepository instance
func NewRestaurantRepository(db *postgres.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// GetRestaurantInformation returns restaurant with catalog entries
// restricted to the given products
func (rr *RestaurantRepository) GetRestaurantInformation(ctx context.Context, restaurantID uuid.UUID, productIDs []uuid.UUID) (*models.Restaurant, error) {
	restaurant := models.Restaurant{}
	err := rr.db.QueryRow(ctx, selectRestaurantByIDQuery, restaurantID).
		Scan(&restaurant.ID, &restaurant.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}

	rows, err := rr.db.Query(ctx, selectRestaurantProductsQuery, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		product := models.Product{}
		var price int64
		if err := rows.Scan(&product.ID, &product.Name, &price, &product.Available); err != nil {
			return nil, err
		}
		product.Price = models.NewMoney(price)
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	restaurant.OrderDetail.Products = products
	return &restaurant, nil
}

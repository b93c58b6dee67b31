package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/models"
)

// OrderService is interface for order placement and tracking
type OrderService interface {
	// CreateOrder validates and persists a new PENDING order
	CreateOrder(ctx context.Context, cmd models.CreateOrderCommand) (*models.Order, models.Event, error)
	// TrackOrder returns order by tracking id
	TrackOrder(ctx context.Context, trackingID uuid.UUID) (*models.Order, error)
}

// EventDispatcher is interface for publishing domain events to their transport
type EventDispatcher interface {
	Dispatch(ctx context.Context, event models.Event)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc        OrderService
	dispatcher EventDispatcher
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService, dispatcher EventDispatcher) *OrderHandler {
	return &OrderHandler{
		svc:        svc,
		dispatcher: dispatcher,
	}
}

type addressReq struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type orderItemReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	SubTotal  float64   `json:"sub_total"`
}

type createOrderReq struct {
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	Address      addressReq     `json:"address"`
	Price        float64        `json:"price"`
	Items        []orderItemReq `json:"items"`
}

// CreateOrderResp is order placement response
type CreateOrderResp struct {
	OrderTrackingID string `json:"order_tracking_id"`
	OrderStatus     string `json:"order_status"`
	Message         string `json:"message"`
}

// TrackOrderResp is order tracking response
type TrackOrderResp struct {
	OrderTrackingID string   `json:"order_tracking_id"`
	OrderStatus     string   `json:"order_status"`
	FailureMessages []string `json:"failure_messages,omitempty"`
}

// CreateOrder places new order
// 201 — order accepted;
// 400 — malformed request body;
// 401 — customer is not authenticated;
// 404 — referenced customer or restaurant does not exist;
// 422 — business rule violation;
// 500 — internal server error.
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createOrderReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     models.MoneyFromFloat(item.Price),
				Subtotal:  models.MoneyFromFloat(item.SubTotal),
			})
		}

		cmd := models.CreateOrderCommand{
			CustomerID:   payload.CustomerID,
			RestaurantID: req.RestaurantID,
			DeliveryAddress: models.Address{
				Street:     req.Address.Street,
				PostalCode: req.Address.PostalCode,
				City:       req.Address.City,
			},
			Price: models.MoneyFromFloat(req.Price),
			Items: items,
		}

		order, event, err := oh.svc.CreateOrder(r.Context(), cmd)
		if err != nil {
			var de *models.DomainError
			switch {
			case errors.As(err, &de):
				http.Error(w, de.Reason, http.StatusUnprocessableEntity)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		oh.dispatcher.Dispatch(r.Context(), event)

		resp := CreateOrderResp{
			OrderTrackingID: order.TrackingID.String(),
			OrderStatus:     order.Status,
			Message:         "Order created successfully.",
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}

// TrackOrder returns current order status by tracking id
// 200 — order found;
// 400 — malformed tracking id;
// 401 — customer is not authenticated;
// 404 — no order with such tracking id;
// 500 — internal server error.
func (oh *OrderHandler) TrackOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := getAuthPayload(r.Context(), authPayloadKey); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		trackingID, err := uuid.Parse(chi.URLParam(r, "trackingID"))
		if err != nil {
			http.Error(w, "bad tracking id", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.TrackOrder(r.Context(), trackingID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := TrackOrderResp{
			OrderTrackingID: order.TrackingID.String(),
			OrderStatus:     order.Status,
			FailureMessages: order.FailureMessages,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateOrder = "order created successfully"
	MessageSuccessGetOrder    = "order retrieved successfully"
	MessageSuccessWebhook     = "notification processed"

	MessageFailedCreateOrder = "failed to create order"
	MessageFailedGetOrder    = "failed to retrieve order"
	MessageFailedWebhook     = "failed to process notification"

	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must contain at least one line")
	ErrPaymentFailed     = errors.New("failed to create payment transaction")
	ErrInvalidSignature  = errors.New("notification signature mismatch")
	ErrOrderAlreadyFinal = errors.New("order is already in a final state")
)

type (
	OrderLineRequest struct {
		SellableID  string   `json:"sellable_id" validate:"required,uuid"`
		Quantity    int      `json:"quantity" validate:"required,min=1"`
		ModifierIDs []string `json:"modifier_ids" validate:"omitempty,dive,uuid"`
	}

	CreateOrderRequest struct {
		CustomerEmail string             `json:"customer_email" validate:"required,email"`
		Lines         []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	}

	CreateOrderResponse struct {
		OrderID     string  `json:"order_id"`
		TotalAmount float64 `json:"total_amount"`
		InvoiceURL  string  `json:"invoice_url"`
	}

	OrderLineResponse struct {
		SellableID  string   `json:"sellable_id"`
		Name        string   `json:"name"`
		Quantity    int      `json:"quantity"`
		UnitPrice   float64  `json:"unit_price"`
		ModifierIDs []string `json:"modifier_ids,omitempty"`
	}

	OrderResponse struct {
		ID            string              `json:"id"`
		CustomerEmail string              `json:"customer_email"`
		Status        string              `json:"status"`
		TotalAmount   float64             `json:"total_amount"`
		InvoiceURL    string              `json:"invoice_url,omitempty"`
		Lines         []OrderLineResponse `json:"lines"`
		CreatedAt     time.Time           `json:"created_at"`
	}

	// AmountCents is the order total in minor currency units so the
	// charged amount never drifts from the stored total.
	PaymentRequest struct {
		OrderID     string
		AmountCents int64
		Email       string
	}

	PaymentResponse struct {
		Token      string
		InvoiceURL string
	}

	// PaymentNotification is the subset of the provider's webhook payload the
	// order service needs to settle or void an order.
	PaymentNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
	}
)

package models

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusFulfilled
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only pending -> fulfilled is allowed; fulfilled -> fulfilled is a no-op.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return next == OrderStatusFulfilled && s.IsValid()
}

// Order is a placed order. Everything except Status is fixed at creation.
type Order struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone"`
	CustomerEmail    string          `json:"customerEmail,omitempty"`
	CustomerAddress  string          `json:"customerAddress"`
	Items            []OrderItem     `json:"items"`
	Total            decimal.Decimal `json:"total"`
	PaymentMethod    string          `json:"paymentMethod"`
	MomoNumber       string          `json:"momoNumber,omitempty"`
	Network          string          `json:"network,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	IsPaid           bool            `json:"isPaid,omitempty"`
	Status           OrderStatus     `json:"status"`
	CreatedAt        string          `json:"createdAt"`
}

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	return c
}

// NewOrder is an order before id, status and timestamp are assigned.
type NewOrder struct {
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone"`
	CustomerEmail    string          `json:"customerEmail,omitempty"`
	CustomerAddress  string          `json:"customerAddress"`
	Items            []OrderItem     `json:"items"`
	Total            decimal.Decimal `json:"total"`
	PaymentMethod    string          `json:"paymentMethod"`
	MomoNumber       string          `json:"momoNumber,omitempty"`
	Network          string          `json:"network,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	IsPaid           bool            `json:"isPaid,omitempty"`
}

// Build assigns the server-controlled fields. Status is always pending.
func (n NewOrder) Build(id, createdAt string) Order {
	return Order{
		ID:               id,
		CustomerName:     n.CustomerName,
		CustomerPhone:    n.CustomerPhone,
		CustomerEmail:    n.CustomerEmail,
		CustomerAddress:  n.CustomerAddress,
		Items:            append([]OrderItem(nil), n.Items...),
		Total:            n.Total,
		PaymentMethod:    n.PaymentMethod,
		MomoNumber:       n.MomoNumber,
		Network:          n.Network,
		PaymentReference: n.PaymentReference,
		IsPaid:           n.IsPaid,
		Status:           OrderStatusPending,
		CreatedAt:        createdAt,
	}
}

// CustomerDetails is the shopper-entered part of checkout.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
}

const (
	PaymentMethodMomo     = "momo"
	PaymentMethodCard     = "card"
	PaymentMethodDelivery = "cash_on_delivery"
)

// PaymentDetails is the payment part of checkout.
type PaymentDetails struct {
	Method     string `json:"method"`
	MomoNumber string `json:"momoNumber,omitempty"`
	Network    string `json:"network,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Paid       bool   `json:"paid,omitempty"`
}

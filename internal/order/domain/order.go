package domain

import "time"

const StatusHandedOff = "HANDED_OFF"

const (
	ChannelWhatsApp  = "WHATSAPP"
	ChannelTelegram  = "TELEGRAM"
	ChannelClipboard = "CLIPBOARD"
)

// Order is an inquiry handed off to a messaging channel. No payment is
// attached; the shop follows up with the customer directly.
type Order struct {
	ID             string
	SessionID      string
	CustomerName   string
	CustomerPhone  string
	Channel        string
	Status         string
	Currency       string
	SubTotalAmount int64
	TaxAmount      int64
	TotalAmount    int64
	OrderItems     []OrderItem
	CreatedAt      time.Time
}

type OrderItem struct {
	ID              string
	OrderID         string
	Title           string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}

type CreateOrderRequest struct {
	SessionID     string
	CustomerName  string
	CustomerPhone string
	Channel       string
	Currency      string
	TaxAmount     int64
	Items         []OrderItemRequest
}

type OrderItemRequest struct {
	Title      string
	UnitAmount int64
	Quantity   int32
}

func ValidChannel(c string) bool {
	switch c {
	case ChannelWhatsApp, ChannelTelegram, ChannelClipboard:
		return true
	}
	return false
}

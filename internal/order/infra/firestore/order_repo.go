package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/phonestore/internal/order/app"
	"github.com/dwikikusuma/phonestore/internal/order/domain"
)

const collection = "orderInquiries"

// OrderRepo keeps each inquiry as one document with its items embedded.
type OrderRepo struct {
	client *firestore.Client
}

func NewOrderRepo(client *firestore.Client) *OrderRepo {
	return &OrderRepo{client: client}
}

type orderDoc struct {
	SessionID      string    `firestore:"sessionId"`
	CustomerName   string    `firestore:"customerName"`
	CustomerPhone  string    `firestore:"customerPhone"`
	Channel        string    `firestore:"channel"`
	Status         string    `firestore:"status"`
	Currency       string    `firestore:"currency"`
	SubTotalAmount int64     `firestore:"subtotalAmount"`
	TaxAmount      int64     `firestore:"taxAmount"`
	TotalAmount    int64     `firestore:"totalAmount"`
	Items          []itemDoc `firestore:"items"`
	CreatedAt      time.Time `firestore:"createdAt"`
}

type itemDoc struct {
	Title           string `firestore:"title"`
	UnitAmount      int64  `firestore:"unitAmount"`
	Quantity        int32  `firestore:"quantity"`
	LineTotalAmount int64  `firestore:"lineTotalAmount"`
}

func (r *OrderRepo) col() *firestore.CollectionRef {
	return r.client.Collection(collection)
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	ref := r.col().NewDoc()
	order.ID = ref.ID
	order.CreatedAt = time.Now().UTC()

	for i, item := range order.OrderItems {
		if item.LineTotalAmount != item.UnitAmount*int64(item.Quantity) {
			return domain.Order{}, fmt.Errorf("item %d: line total mismatch", i)
		}
		order.OrderItems[i].ID = fmt.Sprintf("%s-%d", ref.ID, i+1)
		order.OrderItems[i].OrderID = ref.ID
	}

	if _, err := ref.Create(ctx, toDoc(order)); err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return fromSnapshot(snap)
}

func (r *OrderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	it := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer it.Stop()

	var out []domain.Order
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		o.OrderItems = nil
		out = append(out, o)
	}
	return out, nil
}

func toDoc(o domain.Order) orderDoc {
	items := make([]itemDoc, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, itemDoc{
			Title:           it.Title,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: it.LineTotalAmount,
		})
	}
	return orderDoc{
		SessionID:      o.SessionID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Channel:        o.Channel,
		Status:         o.Status,
		Currency:       o.Currency,
		SubTotalAmount: o.SubTotalAmount,
		TaxAmount:      o.TaxAmount,
		TotalAmount:    o.TotalAmount,
		Items:          items,
		CreatedAt:      o.CreatedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (domain.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return domain.Order{}, err
	}
	return fromDoc(snap.Ref.ID, d), nil
}

func fromDoc(id string, d orderDoc) domain.Order {
	o := domain.Order{
		ID:             id,
		SessionID:      d.SessionID,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		Channel:        d.Channel,
		Status:         d.Status,
		Currency:       d.Currency,
		SubTotalAmount: d.SubTotalAmount,
		TaxAmount:      d.TaxAmount,
		TotalAmount:    d.TotalAmount,
		CreatedAt:      d.CreatedAt,
	}
	for i, it := range d.Items {
		o.OrderItems = append(o.OrderItems, domain.OrderItem{
			ID:              fmt.Sprintf("%s-%d", id, i+1),
			OrderID:         id,
			Title:           it.Title,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: it.LineTotalAmount,
		})
	}
	return o
}

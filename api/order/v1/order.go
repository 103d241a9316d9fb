// Package orderv1 declares the order-inquiry gRPC service. Every method is
// admin-only.
package orderv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.order.v1.OrderService"

type OrderItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	UnitAmount      int64  `json:"unit_amount"`
	Quantity        int32  `json:"quantity"`
	LineTotalAmount int64  `json:"line_total_amount"`
}

type Order struct {
	ID             string      `json:"id"`
	SessionID      string      `json:"session_id"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
	Channel        string      `json:"channel"`
	Status         string      `json:"status"`
	Currency       string      `json:"currency"`
	SubtotalAmount int64       `json:"subtotal_amount"`
	TaxAmount      int64       `json:"tax_amount"`
	TotalAmount    int64       `json:"total_amount"`
	Items          []OrderItem `json:"items,omitempty"`
	CreatedAtUnix  int64       `json:"created_at_unix"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

type GetOrderResponse struct {
	Order Order `json:"order"`
}

type ListOrdersRequest struct {
	Limit int32 `json:"limit"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type OrderServiceServer interface {
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "GetOrder", OrderServiceServer.GetOrder),
		grpcjson.Method(ServiceName, "ListOrders", OrderServiceServer.ListOrders),
	},
	Metadata: "phonestore/order/v1",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type OrderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) *OrderServiceClient {
	return &OrderServiceClient{cc: cc}
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	return grpcjson.Invoke[GetOrderRequest, GetOrderResponse](ctx, c.cc, "/"+ServiceName+"/GetOrder", in, opts...)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return grpcjson.Invoke[ListOrdersRequest, ListOrdersResponse](ctx, c.cc, "/"+ServiceName+"/ListOrders", in, opts...)
}

// Package cartv1 declares the cart gRPC service and its JSON messages.
package cartv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.cart.v1.CartService"

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type AddItemRequest struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
}

type UpdateQuantityRequest struct {
	SessionID string `json:"session_id"`
	LineID    string `json:"line_id"`
	Quantity  int32  `json:"quantity"`
}

type RemoveItemRequest struct {
	SessionID string `json:"session_id"`
	LineID    string `json:"line_id"`
}

type CartLine struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int32  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type Totals struct {
	ItemCount int64  `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
	Tax       int64  `json:"tax"`
	Total     int64  `json:"total"`
	TaxRate   string `json:"tax_rate"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Totals    Totals     `json:"totals"`
}

type CartServiceServer interface {
	AddItem(context.Context, *AddItemRequest) (*Cart, error)
	UpdateQuantity(context.Context, *UpdateQuantityRequest) (*Cart, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*Cart, error)
	ClearCart(context.Context, *SessionRequest) (*Cart, error)
	GetCart(context.Context, *SessionRequest) (*Cart, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "AddItem", CartServiceServer.AddItem),
		grpcjson.Method(ServiceName, "UpdateQuantity", CartServiceServer.UpdateQuantity),
		grpcjson.Method(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
		grpcjson.Method(ServiceName, "ClearCart", CartServiceServer.ClearCart),
		grpcjson.Method(ServiceName, "GetCart", CartServiceServer.GetCart),
	},
	Metadata: "phonestore/cart/v1",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return grpcjson.Invoke[AddItemRequest, Cart](ctx, c.cc, "/"+ServiceName+"/AddItem", in, opts...)
}

func (c *CartServiceClient) UpdateQuantity(ctx context.Context, in *UpdateQuantityRequest, opts ...grpc.CallOption) (*Cart, error) {
	return grpcjson.Invoke[UpdateQuantityRequest, Cart](ctx, c.cc, "/"+ServiceName+"/UpdateQuantity", in, opts...)
}

func (c *CartServiceClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return grpcjson.Invoke[RemoveItemRequest, Cart](ctx, c.cc, "/"+ServiceName+"/RemoveItem", in, opts...)
}

func (c *CartServiceClient) ClearCart(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Cart, error) {
	return grpcjson.Invoke[SessionRequest, Cart](ctx, c.cc, "/"+ServiceName+"/ClearCart", in, opts...)
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Cart, error) {
	return grpcjson.Invoke[SessionRequest, Cart](ctx, c.cc, "/"+ServiceName+"/GetCart", in, opts...)
}

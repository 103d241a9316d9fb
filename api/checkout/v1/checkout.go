// Package checkoutv1 declares the checkout gRPC service.
package checkoutv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.checkout.v1.CheckoutService"

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type QuoteLine struct {
	Title     string `json:"title"`
	Quantity  int32  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type QuoteRequest struct {
	SessionID string `json:"session_id"`
}

type QuoteResponse struct {
	Lines     []QuoteLine `json:"lines"`
	ItemCount int64       `json:"item_count"`
	Subtotal  Money       `json:"subtotal"`
	Tax       Money       `json:"tax"`
	Total     Money       `json:"total"`
	TaxRate   string      `json:"tax_rate"`
}

type SummarizeRequest struct {
	SessionID     string `json:"session_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	Channel       string `json:"channel"`
}

type SummarizeResponse struct {
	Quote       QuoteResponse `json:"quote"`
	OrderID     string        `json:"order_id"`
	Text        string        `json:"text"`
	WhatsAppURL string        `json:"whatsapp_url,omitempty"`
	TelegramURL string        `json:"telegram_url,omitempty"`
}

type CheckoutServiceServer interface {
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	Summarize(context.Context, *SummarizeRequest) (*SummarizeResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "Quote", CheckoutServiceServer.Quote),
		grpcjson.Method(ServiceName, "Summarize", CheckoutServiceServer.Summarize),
	},
	Metadata: "phonestore/checkout/v1",
}

func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CheckoutServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCheckoutServiceClient(cc grpc.ClientConnInterface) *CheckoutServiceClient {
	return &CheckoutServiceClient{cc: cc}
}

func (c *CheckoutServiceClient) Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return grpcjson.Invoke[QuoteRequest, QuoteResponse](ctx, c.cc, "/"+ServiceName+"/Quote", in, opts...)
}

func (c *CheckoutServiceClient) Summarize(ctx context.Context, in *SummarizeRequest, opts ...grpc.CallOption) (*SummarizeResponse, error) {
	return grpcjson.Invoke[SummarizeRequest, SummarizeResponse](ctx, c.cc, "/"+ServiceName+"/Summarize", in, opts...)
}

// Package listingv1 declares the public used-phone listing service.
package listingv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.listing.v1.ListingService"

type Listing struct {
	ID             string   `json:"id"`
	SellerName     string   `json:"seller_name"`
	SellerPhone    string   `json:"seller_phone,omitempty"`
	Model          string   `json:"model"`
	Condition      string   `json:"condition"`
	AskingPrice    int64    `json:"asking_price"`
	Description    string   `json:"description"`
	Images         []string `json:"images"`
	Status         string   `json:"status"`
	ReviewNote     string   `json:"review_note,omitempty"`
	ReviewedBy     string   `json:"reviewed_by,omitempty"`
	CreatedAtUnix  int64    `json:"created_at_unix"`
	ReviewedAtUnix int64    `json:"reviewed_at_unix,omitempty"`
}

type SubmitRequest struct {
	SellerName  string   `json:"seller_name"`
	SellerPhone string   `json:"seller_phone"`
	Model       string   `json:"model"`
	Condition   string   `json:"condition"`
	AskingPrice int64    `json:"asking_price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type SubmitResponse struct {
	Listing Listing `json:"listing"`
}

type ListApprovedRequest struct {
	Limit int32 `json:"limit"`
}

type ListApprovedResponse struct {
	Listings []Listing `json:"listings"`
}

type ListingServiceServer interface {
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	ListApproved(context.Context, *ListApprovedRequest) (*ListApprovedResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ListingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "Submit", ListingServiceServer.Submit),
		grpcjson.Method(ServiceName, "ListApproved", ListingServiceServer.ListApproved),
	},
	Metadata: "phonestore/listing/v1",
}

func RegisterListingServiceServer(s grpc.ServiceRegistrar, srv ListingServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type ListingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewListingServiceClient(cc grpc.ClientConnInterface) *ListingServiceClient {
	return &ListingServiceClient{cc: cc}
}

func (c *ListingServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error) {
	return grpcjson.Invoke[SubmitRequest, SubmitResponse](ctx, c.cc, "/"+ServiceName+"/Submit", in, opts...)
}

func (c *ListingServiceClient) ListApproved(ctx context.Context, in *ListApprovedRequest, opts ...grpc.CallOption) (*ListApprovedResponse, error) {
	return grpcjson.Invoke[ListApprovedRequest, ListApprovedResponse](ctx, c.cc, "/"+ServiceName+"/ListApproved", in, opts...)
}

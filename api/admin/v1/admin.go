// Package adminv1 declares the admin content-management service. Callers must
// carry an allowlisted admin e-mail in the x-admin-email metadata key.
package adminv1

import (
	"context"

	"google.golang.org/grpc"

	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.admin.v1.AdminService"

type ProductInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       catalogv1.Money     `json:"price"`
	Category    string              `json:"category"`
	Subcategory string              `json:"subcategory"`
	Image       string              `json:"image"`
	Variants    []catalogv1.Variant `json:"variants"`
}

type CreateProductRequest struct {
	Product ProductInput `json:"product"`
}

type UpdateProductRequest struct {
	ID      string       `json:"id"`
	Product ProductInput `json:"product"`
}

type ProductResponse struct {
	Product catalogv1.Product `json:"product"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type DeleteResponse struct{}

type AttachProductImageRequest struct {
	ProductID   string `json:"product_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	// Data is base64 on the wire.
	Data []byte `json:"data"`
}

type ListListingsRequest struct {
	Status string `json:"status"`
	Limit  int32  `json:"limit"`
}

type ListListingsResponse struct {
	Listings []listingv1.Listing `json:"listings"`
}

type ReviewListingRequest struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

type ListingResponse struct {
	Listing listingv1.Listing `json:"listing"`
}

type DeleteListingRequest struct {
	ID string `json:"id"`
}

type AdminServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*DeleteResponse, error)
	AttachProductImage(context.Context, *AttachProductImageRequest) (*ProductResponse, error)
	ListListings(context.Context, *ListListingsRequest) (*ListListingsResponse, error)
	ApproveListing(context.Context, *ReviewListingRequest) (*ListingResponse, error)
	RejectListing(context.Context, *ReviewListingRequest) (*ListingResponse, error)
	DeleteListing(context.Context, *DeleteListingRequest) (*DeleteResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "CreateProduct", AdminServiceServer.CreateProduct),
		grpcjson.Method(ServiceName, "UpdateProduct", AdminServiceServer.UpdateProduct),
		grpcjson.Method(ServiceName, "DeleteProduct", AdminServiceServer.DeleteProduct),
		grpcjson.Method(ServiceName, "AttachProductImage", AdminServiceServer.AttachProductImage),
		grpcjson.Method(ServiceName, "ListListings", AdminServiceServer.ListListings),
		grpcjson.Method(ServiceName, "ApproveListing", AdminServiceServer.ApproveListing),
		grpcjson.Method(ServiceName, "RejectListing", AdminServiceServer.RejectListing),
		grpcjson.Method(ServiceName, "DeleteListing", AdminServiceServer.DeleteListing),
	},
	Metadata: "phonestore/admin/v1",
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type AdminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) *AdminServiceClient {
	return &AdminServiceClient{cc: cc}
}

func (c *AdminServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return grpcjson.Invoke[CreateProductRequest, ProductResponse](ctx, c.cc, "/"+ServiceName+"/CreateProduct", in, opts...)
}

func (c *AdminServiceClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return grpcjson.Invoke[UpdateProductRequest, ProductResponse](ctx, c.cc, "/"+ServiceName+"/UpdateProduct", in, opts...)
}

func (c *AdminServiceClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return grpcjson.Invoke[DeleteProductRequest, DeleteResponse](ctx, c.cc, "/"+ServiceName+"/DeleteProduct", in, opts...)
}

func (c *AdminServiceClient) AttachProductImage(ctx context.Context, in *AttachProductImageRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return grpcjson.Invoke[AttachProductImageRequest, ProductResponse](ctx, c.cc, "/"+ServiceName+"/AttachProductImage", in, opts...)
}

func (c *AdminServiceClient) ListListings(ctx context.Context, in *ListListingsRequest, opts ...grpc.CallOption) (*ListListingsResponse, error) {
	return grpcjson.Invoke[ListListingsRequest, ListListingsResponse](ctx, c.cc, "/"+ServiceName+"/ListListings", in, opts...)
}

func (c *AdminServiceClient) ApproveListing(ctx context.Context, in *ReviewListingRequest, opts ...grpc.CallOption) (*ListingResponse, error) {
	return grpcjson.Invoke[ReviewListingRequest, ListingResponse](ctx, c.cc, "/"+ServiceName+"/ApproveListing", in, opts...)
}

func (c *AdminServiceClient) RejectListing(ctx context.Context, in *ReviewListingRequest, opts ...grpc.CallOption) (*ListingResponse, error) {
	return grpcjson.Invoke[ReviewListingRequest, ListingResponse](ctx, c.cc, "/"+ServiceName+"/RejectListing", in, opts...)
}

func (c *AdminServiceClient) DeleteListing(ctx context.Context, in *DeleteListingRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return grpcjson.Invoke[DeleteListingRequest, DeleteResponse](ctx, c.cc, "/"+ServiceName+"/DeleteListing", in, opts...)
}

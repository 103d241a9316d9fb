// Package catalogv1 declares the public catalog gRPC service and the product
// messages shared with the admin service.
package catalogv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
)

const ServiceName = "phonestore.catalog.v1.CatalogService"

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Variant struct {
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	Price   int64  `json:"price"`
	// CartTitle is the title to add to the cart for this variant.
	CartTitle string `json:"cart_title,omitempty"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         Money     `json:"price"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	Route         string    `json:"route"`
	Image         string    `json:"image"`
	Images        []string  `json:"images,omitempty"`
	Variants      []Variant `json:"variants,omitempty"`
	CreatedAtUnix int64     `json:"created_at_unix"`
	UpdatedAtUnix int64     `json:"updated_at_unix"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Route       string `json:"route"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type ResolveRouteRequest struct {
	Subcategory string `json:"subcategory"`
}

type ResolveRouteResponse struct {
	Route string `json:"route"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type ListProductsRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Limit       int32  `json:"limit"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}

type CatalogServiceServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	ResolveRoute(context.Context, *ResolveRouteRequest) (*ResolveRouteResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Method(ServiceName, "Search", CatalogServiceServer.Search),
		grpcjson.Method(ServiceName, "ResolveRoute", CatalogServiceServer.ResolveRoute),
		grpcjson.Method(ServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		grpcjson.Method(ServiceName, "ListProducts", CatalogServiceServer.ListProducts),
	},
	Metadata: "phonestore/catalog/v1",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return grpcjson.Invoke[SearchRequest, SearchResponse](ctx, c.cc, "/"+ServiceName+"/Search", in, opts...)
}

func (c *CatalogServiceClient) ResolveRoute(ctx context.Context, in *ResolveRouteRequest, opts ...grpc.CallOption) (*ResolveRouteResponse, error) {
	return grpcjson.Invoke[ResolveRouteRequest, ResolveRouteResponse](ctx, c.cc, "/"+ServiceName+"/ResolveRoute", in, opts...)
}

func (c *CatalogServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error) {
	return grpcjson.Invoke[GetProductRequest, GetProductResponse](ctx, c.cc, "/"+ServiceName+"/GetProduct", in, opts...)
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return grpcjson.Invoke[ListProductsRequest, ListProductsResponse](ctx, c.cc, "/"+ServiceName+"/ListProducts", in, opts...)
}

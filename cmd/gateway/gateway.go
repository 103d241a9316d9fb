package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	adminv1 "github.com/dwikikusuma/phonestore/api/admin/v1"
	cartv1 "github.com/dwikikusuma/phonestore/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/phonestore/api/checkout/v1"
	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	orderv1 "github.com/dwikikusuma/phonestore/api/order/v1"
	"github.com/dwikikusuma/phonestore/internal/admin/auth"
)

const (
	maxBodyBytes  = 1 << 20
	maxImageBytes = 8 << 20
)

type cartAPI interface {
	AddItem(ctx context.Context, in *cartv1.AddItemRequest, opts ...grpc.CallOption) (*cartv1.Cart, error)
	UpdateQuantity(ctx context.Context, in *cartv1.UpdateQuantityRequest, opts ...grpc.CallOption) (*cartv1.Cart, error)
	RemoveItem(ctx context.Context, in *cartv1.RemoveItemRequest, opts ...grpc.CallOption) (*cartv1.Cart, error)
	ClearCart(ctx context.Context, in *cartv1.SessionRequest, opts ...grpc.CallOption) (*cartv1.Cart, error)
	GetCart(ctx context.Context, in *cartv1.SessionRequest, opts ...grpc.CallOption) (*cartv1.Cart, error)
}

type catalogAPI interface {
	Search(ctx context.Context, in *catalogv1.SearchRequest, opts ...grpc.CallOption) (*catalogv1.SearchResponse, error)
	ResolveRoute(ctx context.Context, in *catalogv1.ResolveRouteRequest, opts ...grpc.CallOption) (*catalogv1.ResolveRouteResponse, error)
	GetProduct(ctx context.Context, in *catalogv1.GetProductRequest, opts ...grpc.CallOption) (*catalogv1.GetProductResponse, error)
	ListProducts(ctx context.Context, in *catalogv1.ListProductsRequest, opts ...grpc.CallOption) (*catalogv1.ListProductsResponse, error)
}

type checkoutAPI interface {
	Quote(ctx context.Context, in *checkoutv1.QuoteRequest, opts ...grpc.CallOption) (*checkoutv1.QuoteResponse, error)
	Summarize(ctx context.Context, in *checkoutv1.SummarizeRequest, opts ...grpc.CallOption) (*checkoutv1.SummarizeResponse, error)
}

type listingAPI interface {
	Submit(ctx context.Context, in *listingv1.SubmitRequest, opts ...grpc.CallOption) (*listingv1.SubmitResponse, error)
	ListApproved(ctx context.Context, in *listingv1.ListApprovedRequest, opts ...grpc.CallOption) (*listingv1.ListApprovedResponse, error)
}

type adminAPI interface {
	CreateProduct(ctx context.Context, in *adminv1.CreateProductRequest, opts ...grpc.CallOption) (*adminv1.ProductResponse, error)
	UpdateProduct(ctx context.Context, in *adminv1.UpdateProductRequest, opts ...grpc.CallOption) (*adminv1.ProductResponse, error)
	DeleteProduct(ctx context.Context, in *adminv1.DeleteProductRequest, opts ...grpc.CallOption) (*adminv1.DeleteResponse, error)
	AttachProductImage(ctx context.Context, in *adminv1.AttachProductImageRequest, opts ...grpc.CallOption) (*adminv1.ProductResponse, error)
	ListListings(ctx context.Context, in *adminv1.ListListingsRequest, opts ...grpc.CallOption) (*adminv1.ListListingsResponse, error)
	ApproveListing(ctx context.Context, in *adminv1.ReviewListingRequest, opts ...grpc.CallOption) (*adminv1.ListingResponse, error)
	RejectListing(ctx context.Context, in *adminv1.ReviewListingRequest, opts ...grpc.CallOption) (*adminv1.ListingResponse, error)
	DeleteListing(ctx context.Context, in *adminv1.DeleteListingRequest, opts ...grpc.CallOption) (*adminv1.DeleteResponse, error)
}

type orderAPI interface {
	GetOrder(ctx context.Context, in *orderv1.GetOrderRequest, opts ...grpc.CallOption) (*orderv1.GetOrderResponse, error)
	ListOrders(ctx context.Context, in *orderv1.ListOrdersRequest, opts ...grpc.CallOption) (*orderv1.ListOrdersResponse, error)
}

type cookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type gateway struct {
	cart     cartAPI
	catalog  catalogAPI
	checkout checkoutAPI
	listings listingAPI
	admin    adminAPI
	orders   orderAPI

	cookie cookieConfig
	log    *slog.Logger
}

// routes builds the public mux. Admin routes sit behind adminAuth.
func (g *gateway) routes(adminAuth *auth.Middleware, ready http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", ready)

	mux.HandleFunc("GET /api/cart", g.getCart)
	mux.HandleFunc("POST /api/cart/items", g.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", g.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", g.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", g.clearCart)

	mux.HandleFunc("GET /api/search", g.search)
	mux.HandleFunc("GET /api/route", g.resolveRoute)
	mux.HandleFunc("GET /api/products", g.listProducts)
	mux.HandleFunc("GET /api/products/{id}", g.getProduct)

	mux.HandleFunc("POST /api/checkout/quote", g.quote)
	mux.HandleFunc("POST /api/checkout/summary", g.summarize)

	mux.HandleFunc("POST /api/listings", g.submitListing)
	mux.HandleFunc("GET /api/listings", g.listApproved)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /api/admin/products", g.createProduct)
	admin.HandleFunc("PUT /api/admin/products/{id}", g.updateProduct)
	admin.HandleFunc("DELETE /api/admin/products/{id}", g.deleteProduct)
	admin.HandleFunc("POST /api/admin/products/{id}/images", g.attachProductImage)
	admin.HandleFunc("GET /api/admin/listings", g.listListings)
	admin.HandleFunc("POST /api/admin/listings/{id}/approve", g.approveListing)
	admin.HandleFunc("POST /api/admin/listings/{id}/reject", g.rejectListing)
	admin.HandleFunc("DELETE /api/admin/listings/{id}", g.deleteListing)
	admin.HandleFunc("GET /api/admin/orders", g.listOrders)
	admin.HandleFunc("GET /api/admin/orders/{id}", g.getOrder)
	mux.Handle("/api/admin/", adminAuth.Handler(admin))

	return mux
}

// session returns the cart session id, issuing a new cookie when absent.
func (g *gateway) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(g.cookie.Name); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookie.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(g.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   g.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) int32 {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return int32(n)
}

// Cart

type addItemBody struct {
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
}

type quantityBody struct {
	Quantity int32 `json:"quantity"`
}

func (g *gateway) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := g.cart.GetCart(r.Context(), &cartv1.SessionRequest{SessionID: g.session(w, r)})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (g *gateway) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body addItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	cart, err := g.cart.AddItem(r.Context(), &cartv1.AddItemRequest{
		SessionID: g.session(w, r),
		Title:     body.Title,
		UnitPrice: body.UnitPrice,
		Image:     body.Image,
		Category:  body.Category,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (g *gateway) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var body quantityBody
	if !decodeJSON(w, r, &body) {
		return
	}
	cart, err := g.cart.UpdateQuantity(r.Context(), &cartv1.UpdateQuantityRequest{
		SessionID: g.session(w, r),
		LineID:    r.PathValue("id"),
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (g *gateway) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := g.cart.RemoveItem(r.Context(), &cartv1.RemoveItemRequest{
		SessionID: g.session(w, r),
		LineID:    r.PathValue("id"),
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (g *gateway) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := g.cart.ClearCart(r.Context(), &cartv1.SessionRequest{SessionID: g.session(w, r)})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Catalog

func (g *gateway) search(w http.ResponseWriter, r *http.Request) {
	resp, err := g.catalog.Search(r.Context(), &catalogv1.SearchRequest{Query: r.URL.Query().Get("q")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	if resp.Results == nil {
		resp.Results = []catalogv1.SearchResult{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) resolveRoute(w http.ResponseWriter, r *http.Request) {
	resp, err := g.catalog.ResolveRoute(r.Context(), &catalogv1.ResolveRouteRequest{
		Subcategory: r.URL.Query().Get("subcategory"),
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := g.catalog.ListProducts(r.Context(), &catalogv1.ListProductsRequest{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Limit:       queryInt(r, "limit"),
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) getProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := g.catalog.GetProduct(r.Context(), &catalogv1.GetProductRequest{ID: r.PathValue("id")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Checkout

type summaryBody struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	Channel       string `json:"channel"`
}

func (g *gateway) quote(w http.ResponseWriter, r *http.Request) {
	resp, err := g.checkout.Quote(r.Context(), &checkoutv1.QuoteRequest{SessionID: g.session(w, r)})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) summarize(w http.ResponseWriter, r *http.Request) {
	var body summaryBody
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := g.checkout.Summarize(r.Context(), &checkoutv1.SummarizeRequest{
		SessionID:     g.session(w, r),
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		Address:       body.Address,
		Note:          body.Note,
		Channel:       body.Channel,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Listings

func (g *gateway) submitListing(w http.ResponseWriter, r *http.Request) {
	var body listingv1.SubmitRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := g.listings.Submit(r.Context(), &body)
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (g *gateway) listApproved(w http.ResponseWriter, r *http.Request) {
	resp, err := g.listings.ListApproved(r.Context(), &listingv1.ListApprovedRequest{Limit: queryInt(r, "limit")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

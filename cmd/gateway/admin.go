package main

import (
	"context"
	"io"
	"mime"
	"net/http"

	"google.golang.org/grpc"

	adminv1 "github.com/dwikikusuma/phonestore/api/admin/v1"
	orderv1 "github.com/dwikikusuma/phonestore/api/order/v1"
	"github.com/dwikikusuma/phonestore/internal/admin/auth"
)

type reviewBody struct {
	Note string `json:"note"`
}

func (g *gateway) createProduct(w http.ResponseWriter, r *http.Request) {
	var body adminv1.ProductInput
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := g.admin.CreateProduct(auth.OutgoingContext(r.Context()), &adminv1.CreateProductRequest{Product: body})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (g *gateway) updateProduct(w http.ResponseWriter, r *http.Request) {
	var body adminv1.ProductInput
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := g.admin.UpdateProduct(auth.OutgoingContext(r.Context()), &adminv1.UpdateProductRequest{
		ID:      r.PathValue("id"),
		Product: body,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) deleteProduct(w http.ResponseWriter, r *http.Request) {
	_, err := g.admin.DeleteProduct(auth.OutgoingContext(r.Context()), &adminv1.DeleteProductRequest{ID: r.PathValue("id")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// attachProductImage expects a multipart form with the file in "image".
func (g *gateway) attachProductImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "expected multipart form with an image file")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "unreadable image file")
		return
	}
	if len(data) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "INVALID_ARGUMENT", "image too large")
		return
	}

	contentType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	resp, err := g.admin.AttachProductImage(auth.OutgoingContext(r.Context()), &adminv1.AttachProductImageRequest{
		ProductID:   r.PathValue("id"),
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) listListings(w http.ResponseWriter, r *http.Request) {
	resp, err := g.admin.ListListings(auth.OutgoingContext(r.Context()), &adminv1.ListListingsRequest{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) approveListing(w http.ResponseWriter, r *http.Request) {
	g.reviewListing(w, r, g.admin.ApproveListing)
}

func (g *gateway) rejectListing(w http.ResponseWriter, r *http.Request) {
	g.reviewListing(w, r, g.admin.RejectListing)
}

type reviewCall func(ctx context.Context, in *adminv1.ReviewListingRequest, opts ...grpc.CallOption) (*adminv1.ListingResponse, error)

func (g *gateway) reviewListing(w http.ResponseWriter, r *http.Request, call reviewCall) {
	var body reviewBody
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := call(auth.OutgoingContext(r.Context()), &adminv1.ReviewListingRequest{
		ID:   r.PathValue("id"),
		Note: body.Note,
	})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) deleteListing(w http.ResponseWriter, r *http.Request) {
	_, err := g.admin.DeleteListing(auth.OutgoingContext(r.Context()), &adminv1.DeleteListingRequest{ID: r.PathValue("id")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *gateway) listOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := g.orders.ListOrders(auth.OutgoingContext(r.Context()), &orderv1.ListOrdersRequest{Limit: queryInt(r, "limit")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *gateway) getOrder(w http.ResponseWriter, r *http.Request) {
	resp, err := g.orders.GetOrder(auth.OutgoingContext(r.Context()), &orderv1.GetOrderRequest{ID: r.PathValue("id")})
	if err != nil {
		writeGRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

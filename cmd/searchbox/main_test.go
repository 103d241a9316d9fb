package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	"github.com/dwikikusuma/phonestore/internal/catalog/livesearch"
)

type stubCatalog struct {
	mu      sync.Mutex
	queries []string
}

func (s *stubCatalog) Search(ctx context.Context, in *catalogv1.SearchRequest, _ ...grpc.CallOption) (*catalogv1.SearchResponse, error) {
	s.mu.Lock()
	s.queries = append(s.queries, in.Query)
	s.mu.Unlock()
	return &catalogv1.SearchResponse{Results: []catalogv1.SearchResult{{
		ID: "p1", Name: "Galaxy A16", Price: catalogv1.Money{Currency: "PKR", Amount: 45000}, Subcategory: "Samsung Galaxy A16",
	}}}, nil
}

func TestTypingIsDebounced(t *testing.T) {
	stub := &stubCatalog{}
	var buf bytes.Buffer
	out := &printer{w: &buf}

	done := make(chan struct{})
	deliver := func(r livesearch.Result) {
		out.print(r)
		close(done)
	}

	box := livesearch.New(context.Background(), catalogSearch(stub), deliver, livesearch.WithDelay(20*time.Millisecond))
	defer box.Stop()

	for _, term := range []string{"g", "ga", "gal", "gala"} {
		box.Type(term)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Equal(t, []string{"gala"}, stub.queries)
	assert.Contains(t, buf.String(), `"gala": 1 result(s)`)
	assert.Contains(t, buf.String(), "PKR 45000")
}

func TestPrinterNoResults(t *testing.T) {
	var buf bytes.Buffer
	(&printer{w: &buf}).print(livesearch.Result{Term: "x"})
	assert.Equal(t, "\"x\": no results\n", buf.String())
}

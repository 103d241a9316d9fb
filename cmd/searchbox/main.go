// Command searchbox is a terminal search-as-you-type client for the catalog.
// Each line read from stdin is the current content of the search box.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"google.golang.org/grpc"

	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
	"github.com/dwikikusuma/phonestore/internal/catalog/livesearch"
	"github.com/dwikikusuma/phonestore/pkg/config"
	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
	"github.com/dwikikusuma/phonestore/pkg/logger"
	"github.com/dwikikusuma/phonestore/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.StorefrontAddr, "storefront gRPC address")
	delay := flag.Duration("delay", livesearch.DefaultDelay, "debounce window")
	flag.Parse()

	log := logger.New(logger.Options{Service: "searchbox", Env: cfg.AppEnv, Level: cfg.LogLevel, Output: os.Stderr})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	conn, err := grpcjson.Dial(*addr)
	if err != nil {
		log.Error("dial storefront failed", slog.Any("err", err), slog.String("addr", *addr))
		os.Exit(1)
	}
	defer conn.Close()

	client := catalogv1.NewCatalogServiceClient(conn)
	out := &printer{w: os.Stdout}

	box := livesearch.New(ctx, catalogSearch(client), out.print,
		livesearch.WithDelay(*delay),
		livesearch.WithLogger(log),
	)
	defer box.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				// Let the last keystroke settle before exiting.
				time.Sleep(*delay + time.Second)
				return
			}
			box.Type(line)
		}
	}
}

type catalogSearcher interface {
	Search(ctx context.Context, in *catalogv1.SearchRequest, opts ...grpc.CallOption) (*catalogv1.SearchResponse, error)
}

func catalogSearch(client catalogSearcher) livesearch.SearchFunc {
	return func(ctx context.Context, term string) ([]domain.SearchResult, error) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		resp, err := client.Search(ctx, &catalogv1.SearchRequest{Query: term})
		if err != nil {
			return nil, err
		}
		items := make([]domain.SearchResult, 0, len(resp.Results))
		for _, r := range resp.Results {
			items = append(items, domain.SearchResult{
				ID:          r.ID,
				Name:        r.Name,
				Price:       domain.Money{Currency: r.Price.Currency, Amount: r.Price.Amount},
				Category:    r.Category,
				Subcategory: r.Subcategory,
			})
		}
		return items, nil
	}
}

type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printer) print(r livesearch.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(r.Items) == 0 {
		fmt.Fprintf(p.w, "%q: no results\n", r.Term)
		return
	}
	fmt.Fprintf(p.w, "%q: %d result(s)\n", r.Term, len(r.Items))
	for _, it := range r.Items {
		fmt.Fprintf(p.w, "  %-32s %s %d  (%s)\n", it.Name, it.Price.Currency, it.Price.Amount, it.Subcategory)
	}
}

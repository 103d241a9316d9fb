package sendgrid

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

type sendFunc func(ctx context.Context, msg *mail.SGMailV3) (*rest.Response, error)

// Notifier e-mails the admin allowlist when a listing is submitted.
type Notifier struct {
	send     sendFunc
	from     *mail.Email
	to       []string
	adminURL string
	log      *slog.Logger
}

func NewNotifier(apiKey, fromAddr string, to []string, adminURL string, log *slog.Logger) (*Notifier, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is empty")
	}
	client := sendgrid.NewSendClient(apiKey)
	return newNotifier(client.SendWithContext, fromAddr, to, adminURL, log)
}

func newNotifier(send sendFunc, fromAddr string, to []string, adminURL string, log *slog.Logger) (*Notifier, error) {
	if fromAddr == "" {
		return nil, errors.New("from address is empty")
	}
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return nil, errors.New("no notification recipients")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{
		send:     send,
		from:     mail.NewEmail("Phone Store", fromAddr),
		to:       recipients,
		adminURL: strings.TrimRight(adminURL, "/"),
		log:      log,
	}, nil
}

func (n *Notifier) ListingSubmitted(ctx context.Context, l domain.Listing) error {
	subject := fmt.Sprintf("New listing to review: %s", l.Model)
	plain := listingBody(l, n.adminURL)

	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", n.to[0]), plain,
		"<pre>"+html.EscapeString(plain)+"</pre>")
	for _, addr := range n.to[1:] {
		msg.Personalizations[0].AddTos(mail.NewEmail("", addr))
	}

	resp, err := n.send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}

	n.log.InfoContext(ctx, "listing notification sent",
		slog.String("listing_id", l.ID), slog.Int("recipients", len(n.to)), slog.Int("status", resp.StatusCode))
	return nil
}

func listingBody(l domain.Listing, adminURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model: %s\n", l.Model)
	if l.Condition != "" {
		fmt.Fprintf(&b, "Condition: %s\n", l.Condition)
	}
	fmt.Fprintf(&b, "Asking price: %d\n", l.AskingPrice)
	fmt.Fprintf(&b, "Seller: %s (%s)\n", l.SellerName, l.SellerPhone)
	if l.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Description)
	}
	if adminURL != "" {
		fmt.Fprintf(&b, "\nReview: %s/listings/%s\n", adminURL, l.ID)
	}
	return b.String()
}

package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FormatAmount renders a whole-unit amount with thousands separators,
// e.g. "PKR 45,000".
func FormatAmount(m Money) string {
	n := m.Amount
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if m.Currency == "" {
		return sign + b.String()
	}
	return m.Currency + " " + sign + b.String()
}

// SummaryText is the message pasted into the chat with the shop.
func SummaryText(store string, q Quote, c Customer, orderID string) string {
	var b strings.Builder
	if store != "" {
		fmt.Fprintf(&b, "New order - %s\n\n", store)
	} else {
		b.WriteString("New order\n\n")
	}

	for i, l := range q.Lines {
		fmt.Fprintf(&b, "%d. %s x%d - %s\n", i+1, l.Title, l.Quantity, FormatAmount(l.LineTotal))
	}

	fmt.Fprintf(&b, "\nItems: %d\n", q.ItemCount)
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatAmount(q.Subtotal))
	fmt.Fprintf(&b, "Tax (%s): %s\n", q.TaxRate, FormatAmount(q.Tax))
	fmt.Fprintf(&b, "Total: %s\n", FormatAmount(q.Total))

	fmt.Fprintf(&b, "\nCustomer: %s\n", c.Name)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	if c.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	}
	if c.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", c.Note)
	}
	if orderID != "" {
		fmt.Fprintf(&b, "Ref: %s\n", orderID)
	}
	return b.String()
}

// WhatsAppURL returns a wa.me link that opens a chat with phone prefilled
// with text. Non-digits in phone are dropped. It returns "" when no digits
// remain.
func WhatsAppURL(phone, text string) string {
	digits := Digits(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + escapeText(text)
}

// TelegramURL returns a t.me link for handle, with or without a leading "@".
func TelegramURL(handle, text string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ""
	}
	return "https://t.me/" + url.PathEscape(handle) + "?text=" + escapeText(text)
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeText encodes spaces as %20, which both apps render correctly.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

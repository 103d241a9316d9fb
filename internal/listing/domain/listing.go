package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var ErrInvalidTransition = errors.New("listing is not pending review")

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

// Listing is a used phone a member of the public wants the shop to sell.
type Listing struct {
	ID          string
	SellerName  string
	SellerPhone string
	Model       string
	Condition   string
	AskingPrice int64
	Description string
	Images      []string
	Status      Status
	ReviewNote  string
	ReviewedBy  string
	CreatedAt   time.Time
	ReviewedAt  time.Time
}

// Review moves a pending listing to to. Reviews are final.
func (l *Listing) Review(to Status, reviewer, note string, at time.Time) error {
	if l.Status != StatusPending {
		return ErrInvalidTransition
	}
	if to != StatusApproved && to != StatusRejected {
		return ErrInvalidTransition
	}
	l.Status = to
	l.ReviewedBy = reviewer
	l.ReviewNote = note
	l.ReviewedAt = at
	return nil
}

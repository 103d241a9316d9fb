package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview(t *testing.T) {
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	l := Listing{Status: StatusPending}
	require.NoError(t, l.Review(StatusApproved, "owner@shop.pk", "looks clean", at))
	assert.Equal(t, StatusApproved, l.Status)
	assert.Equal(t, "owner@shop.pk", l.ReviewedBy)
	assert.Equal(t, at, l.ReviewedAt)

	assert.ErrorIs(t, l.Review(StatusRejected, "x", "", at), ErrInvalidTransition)
	assert.Equal(t, StatusApproved, l.Status)

	p := Listing{Status: StatusPending}
	assert.ErrorIs(t, p.Review(StatusPending, "x", "", at), ErrInvalidTransition)
	require.NoError(t, p.Review(StatusRejected, "x", "blurry photos", at))
	assert.Equal(t, "blurry photos", p.ReviewNote)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("APPROVED")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, st)

	_, ok = ParseStatus("approved")
	assert.False(t, ok)
}

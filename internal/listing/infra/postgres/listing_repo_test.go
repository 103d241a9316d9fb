package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

func TestScanListingPending(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("PKT", 5*3600))

	l, err := scanListing(rowFunc(func(dest ...any) error {
		*dest[0].(*uuid.UUID) = id
		*dest[1].(*string) = "Ali"
		*dest[2].(*string) = "03001234567"
		*dest[3].(*string) = "iPhone 12"
		*dest[4].(*string) = "Used"
		*dest[5].(*int64) = 70000
		*dest[6].(*string) = ""
		*dest[7].(*pq.StringArray) = pq.StringArray{"https://img/1.jpg"}
		*dest[8].(*string) = "PENDING"
		*dest[11].(*time.Time) = created
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, id.String(), l.ID)
	assert.Equal(t, domain.StatusPending, l.Status)
	assert.Equal(t, []string{"https://img/1.jpg"}, l.Images)
	assert.Empty(t, l.ReviewedBy)
	assert.True(t, l.ReviewedAt.IsZero())
	assert.Equal(t, time.UTC, l.CreatedAt.Location())
}

func TestScanListingReviewed(t *testing.T) {
	reviewed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	l, err := scanListing(rowFunc(func(dest ...any) error {
		*dest[8].(*string) = "REJECTED"
		*dest[9].(*sql.NullString) = sql.NullString{String: "blurry", Valid: true}
		*dest[10].(*sql.NullString) = sql.NullString{String: "owner@shop.pk", Valid: true}
		*dest[12].(*sql.NullTime) = sql.NullTime{Time: reviewed, Valid: true}
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, l.Status)
	assert.Equal(t, "blurry", l.ReviewNote)
	assert.Equal(t, "owner@shop.pk", l.ReviewedBy)
	assert.Equal(t, reviewed, l.ReviewedAt)
}

func TestNonNil(t *testing.T) {
	assert.NotNil(t, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

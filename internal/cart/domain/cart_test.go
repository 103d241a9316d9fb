package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
}

func TestAddMergesByTitle(t *testing.T) {
	c := NewWithIDs(seqIDs())

	first := c.Add(Item{Title: "Galaxy A16 (8GB RAM - 128GB)", UnitPrice: 1000, Image: "a.png", Category: "Samsung"})
	for i := 0; i < 4; i++ {
		c.Add(Item{Title: "Galaxy A16 (8GB RAM - 128GB)", UnitPrice: 9999, Image: "b.png", Category: "Other"})
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, first.ID, lines[0].ID)
	assert.EqualValues(t, 5, lines[0].Quantity)
	assert.EqualValues(t, 1000, lines[0].UnitPrice)
	assert.Equal(t, "a.png", lines[0].Image)
	assert.Equal(t, "Samsung", lines[0].Category)
}

func TestAddDistinctTitles(t *testing.T) {
	c := NewWithIDs(seqIDs())
	a := c.Add(Item{Title: "Hot 50", UnitPrice: 500})
	b := c.Add(Item{Title: "Hot 50 Pro", UnitPrice: 700})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Hot 50", "Hot 50 Pro"}, []string{c.Lines()[0].Title, c.Lines()[1].Title})
}

func TestDefaultIDsAreUnique(t *testing.T) {
	c := New()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		l := c.Add(Item{Title: fmt.Sprintf("p%d", i)})
		require.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := NewWithIDs(seqIDs())
	line := c.Add(Item{Title: "Widget", UnitPrice: 100})
	c.Add(Item{Title: "Widget"})

	t.Run("non-positive quantity leaves line unchanged", func(t *testing.T) {
		for _, q := range []int32{0, -1, -100} {
			assert.False(t, c.UpdateQuantity(line.ID, q))
			assert.EqualValues(t, 2, c.Lines()[0].Quantity)
		}
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		assert.False(t, c.UpdateQuantity("missing", 3))
		assert.EqualValues(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("positive quantity replaces", func(t *testing.T) {
		assert.True(t, c.UpdateQuantity(line.ID, 7))
		assert.EqualValues(t, 7, c.Lines()[0].Quantity)
	})
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := NewWithIDs(seqIDs())
	a := c.Add(Item{Title: "A"})
	c.Add(Item{Title: "B"})

	assert.True(t, c.Remove(a.ID))
	after := c.Lines()
	assert.False(t, c.Remove(a.ID))
	assert.Equal(t, after, c.Lines())
	require.Len(t, after, 1)
	assert.Equal(t, "B", after[0].Title)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(Item{Title: "A"})
	c.Add(Item{Title: "B"})
	c.Add(Item{Title: "A"})

	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Len())

	c.Clear()
	assert.Empty(t, c.Lines())
}

func TestLinesIsSnapshot(t *testing.T) {
	c := New()
	c.Add(Item{Title: "A", UnitPrice: 10})
	snap := c.Lines()
	snap[0].Quantity = 99

	assert.EqualValues(t, 1, c.Lines()[0].Quantity)
}

func TestSummarize(t *testing.T) {
	t.Run("two lines", func(t *testing.T) {
		lines := []Line{
			{UnitPrice: 1000, Quantity: 2},
			{UnitPrice: 500, Quantity: 1},
		}
		got := Summarize(lines, DefaultTaxRate)
		assert.Equal(t, Totals{ItemCount: 3, Subtotal: 2500, Tax: 200, Total: 2700}, got)
	})

	t.Run("empty cart", func(t *testing.T) {
		assert.Equal(t, Totals{}, Summarize(nil, DefaultTaxRate))
	})

	t.Run("tax rounds to nearest unit", func(t *testing.T) {
		// 8% of 1331 = 106.48 -> 106; 8% of 1344 = 107.52 -> 108
		assert.EqualValues(t, 106, Summarize([]Line{{UnitPrice: 1331, Quantity: 1}}, DefaultTaxRate).Tax)
		assert.EqualValues(t, 108, Summarize([]Line{{UnitPrice: 1344, Quantity: 1}}, DefaultTaxRate).Tax)
	})

	t.Run("custom rate", func(t *testing.T) {
		got := Summarize([]Line{{UnitPrice: 200, Quantity: 5}}, decimal.RequireFromString("0.17"))
		assert.EqualValues(t, 170, got.Tax)
		assert.EqualValues(t, 1170, got.Total)
	})
}

func TestWidgetScenario(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		c.Add(Item{Title: "Widget", UnitPrice: 100})
	}
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, lines[0].Quantity)
	assert.EqualValues(t, 300, Summarize(lines, DefaultTaxRate).Subtotal)

	c.UpdateQuantity(lines[0].ID, 0)
	assert.EqualValues(t, 3, c.Lines()[0].Quantity)

	c.Remove(lines[0].ID)
	assert.Empty(t, c.Lines())
}

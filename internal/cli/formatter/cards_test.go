package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/haulboard/internal/domain"
)

func TestFit(t *testing.T) {
	assert.Equal(t, "abc  ", Fit("abc", 5))
	assert.Equal(t, "abcd…", Fit("abcdefgh", 5))
	assert.Equal(t, "", Fit("abc", 0))
	assert.Len(t, []rune(Fit("日本語のテキスト", 5)), 5)
}

func TestOrderCard(t *testing.T) {
	out := &domain.Order{Kind: domain.OrderOutbound, Customer: "Acme", Quantity: 12}
	in := &domain.Order{Kind: domain.OrderInbound, Customer: "Millco", Quantity: 4}

	assert.Equal(t, "▸ Acme 12", OrderCard(out, 9))
	assert.Contains(t, OrderCard(in, 12), "▾ Millco 4")
	assert.Len(t, []rune(OrderCard(out, 20)), 20)
}

func TestCapacityBar_Levels(t *testing.T) {
	// Narrow widths degrade to the bare label.
	assert.Contains(t, CapacityBar(380, 500, 8), "380/500")

	bar := CapacityBar(250, 500, 20)
	assert.Contains(t, bar, "250/500")
	assert.Contains(t, bar, "▓")
	assert.Contains(t, bar, "░")

	// Overbooked bins clamp the fill instead of overflowing the bar.
	over := CapacityBar(900, 500, 20)
	assert.Contains(t, over, "900/500")
	assert.NotContains(t, over, "░")
}

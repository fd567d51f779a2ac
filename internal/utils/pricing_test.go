package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carbook/internal/domain"
)

func TestParseAmount(t *testing.T) {
	t.Run("passes floats through", func(t *testing.T) {
		assert.Equal(t, 199.99, ParseAmount(199.99))
	})

	t.Run("converts integers", func(t *testing.T) {
		assert.Equal(t, 55.0, ParseAmount(55))
		assert.Equal(t, 55.0, ParseAmount(int64(55)))
	})

	t.Run("parses numeric strings", func(t *testing.T) {
		assert.Equal(t, 199.99, ParseAmount("199.99"))
		assert.Equal(t, 40.0, ParseAmount(" 40 "))
	})

	t.Run("unparseable values count as zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ParseAmount("not-a-number"))
		assert.Equal(t, 0.0, ParseAmount(nil))
		assert.Equal(t, 0.0, ParseAmount(true))
		assert.Equal(t, 0.0, ParseAmount(""))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 304.99, Round2(304.989999))
	assert.Equal(t, 50.0, Round2(50))
	assert.Equal(t, 0.1, Round2(0.1049))
}

func TestComputeQuote(t *testing.T) {
	t.Run("base plus tax plus selected extras", func(t *testing.T) {
		quote := ComputeQuote(199.99, []string{domain.ExtraAdditionalDriver}, domain.ExtrasCatalog, domain.BookingTax)

		assert.Equal(t, 199.99, quote.Base)
		assert.Equal(t, 50.0, quote.Tax)
		assert.Equal(t, 55.0, quote.Extras)
		assert.Equal(t, 304.99, quote.Total)
	})

	t.Run("string base price", func(t *testing.T) {
		quote := ComputeQuote("120.50", nil, domain.ExtrasCatalog, domain.BookingTax)
		assert.Equal(t, 170.50, quote.Total)
	})

	t.Run("unknown extras are ignored", func(t *testing.T) {
		quote := ComputeQuote(100.0, []string{"jetpack", domain.ExtraChildSeat}, domain.ExtrasCatalog, domain.BookingTax)
		assert.Equal(t, 25.0, quote.Extras)
		assert.Equal(t, 175.0, quote.Total)
	})

	t.Run("unparseable base still yields tax and extras", func(t *testing.T) {
		quote := ComputeQuote("not-a-number", []string{domain.ExtraFullInsurance}, domain.ExtrasCatalog, domain.BookingTax)

		assert.Equal(t, 0.0, quote.Base)
		assert.Equal(t, 90.0, quote.Total)
	})

	t.Run("negative base is clamped", func(t *testing.T) {
		quote := ComputeQuote(-10.0, nil, domain.ExtrasCatalog, domain.BookingTax)
		assert.Equal(t, 0.0, quote.Base)
		assert.Equal(t, 50.0, quote.Total)
	})

	t.Run("never returns a negative total", func(t *testing.T) {
		quote := ComputeQuote(-500.0, nil, domain.ExtrasCatalog, -10)
		assert.GreaterOrEqual(t, quote.Total, 0.0)
	})
}

func TestComputeTotal(t *testing.T) {
	total := ComputeTotal(199.99, []string{domain.ExtraAdditionalDriver}, domain.ExtrasCatalog, domain.BookingTax)
	assert.Equal(t, 304.99, total)
}

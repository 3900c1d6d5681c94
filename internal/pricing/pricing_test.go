package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/periodical-store/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarizeMagazineIsTaxed(t *testing.T) {
	s := Summarize([]Line{{Type: model.TypeMagazine, UnitPrice: dec("100"), Quantity: 1}})

	assert.Equal(t, "100.00", s.Subtotal.StringFixed(2))
	assert.Equal(t, "8.25", s.Tax.StringFixed(2))
	assert.Equal(t, "108.25", s.Total.StringFixed(2))
	assert.Equal(t, int64(108), s.PointsEarned)
	assert.Equal(t, 1, s.ItemCount)
}

func TestSummarizeMixedCart(t *testing.T) {
	s := Summarize([]Line{
		{Type: model.TypeNewspaper, UnitPrice: dec("20"), Quantity: 1},
		{Type: model.TypeMagazine, UnitPrice: dec("100"), Quantity: 1},
	})

	assert.Equal(t, "120.00", s.Subtotal.StringFixed(2))
	assert.Equal(t, "8.25", s.Tax.StringFixed(2))
	assert.Equal(t, "128.25", s.Total.StringFixed(2))
}

func TestSummarizeNewspapersAreUntaxed(t *testing.T) {
	s := Summarize([]Line{
		{Type: model.TypeNewspaper, UnitPrice: dec("199.99"), Quantity: 1},
		{Type: model.TypeNewspaper, UnitPrice: dec("24.99"), Quantity: 2},
	})

	assert.True(t, s.Tax.IsZero())
	assert.True(t, s.Total.Equal(s.Subtotal))
	assert.Equal(t, "249.97", s.Subtotal.StringFixed(2))
}

func TestSummarizeTotalIsSubtotalPlusTax(t *testing.T) {
	lines := []Line{
		{Type: model.TypeMagazine, UnitPrice: dec("189.99"), Quantity: 1},
		{Type: model.TypeMagazine, UnitPrice: dec("39.99"), Quantity: 1},
		{Type: model.TypeNewspaper, UnitPrice: dec("299.99"), Quantity: 1},
	}
	s := Summarize(lines)

	assert.True(t, s.Total.Equal(s.Subtotal.Add(s.Tax)))
	// 8.25% of 229.98 = 18.97335
	assert.Equal(t, "18.97", s.Tax.StringFixed(2))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Total.IsZero())
	assert.Zero(t, s.PointsEarned)
	assert.Zero(t, s.ItemCount)
}

func TestApplyPoints(t *testing.T) {
	s := Summarize([]Line{{Type: model.TypeMagazine, UnitPrice: dec("100"), Quantity: 1}})

	q, err := ApplyPoints(s, 8, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(8), q.PointsUsed)
	assert.Equal(t, "100.25", q.Total.StringFixed(2))
	assert.Equal(t, int64(100), q.PointsEarned)

	q, err = ApplyPoints(s, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "108.25", q.Total.StringFixed(2))
}

func TestApplyPointsRejections(t *testing.T) {
	s := Summarize([]Line{{Type: model.TypeNewspaper, UnitPrice: dec("80"), Quantity: 1}})

	_, err := ApplyPoints(s, 100, 50)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = ApplyPoints(s, 81, 500)
	assert.ErrorIs(t, err, ErrPointsExceedTotal)

	_, err = ApplyPoints(s, -1, 500)
	assert.ErrorIs(t, err, ErrInvalidPoints)

	q, err := ApplyPoints(s, 80, 80)
	require.NoError(t, err)
	assert.True(t, q.Total.IsZero())
	assert.Zero(t, q.PointsEarned)
}

func TestRewardPoints(t *testing.T) {
	mag := model.Publication{Type: model.TypeMagazine, Price: dec("189.99")}
	paper := model.Publication{Type: model.TypeNewspaper, Price: dec("89.99")}

	assert.Equal(t, int64(18), RewardPoints(mag))
	assert.Equal(t, int64(17), RewardPoints(paper))
}

func TestProratedRefund(t *testing.T) {
	assert.Equal(t, "50.00", ProratedRefund(dec("100"), 366, 183).StringFixed(2))
	assert.Equal(t, "100.00", ProratedRefund(dec("100"), 365, 400).StringFixed(2))
	assert.True(t, ProratedRefund(dec("100"), 365, 0).IsZero())
	assert.True(t, ProratedRefund(dec("100"), 0, 10).IsZero())
}

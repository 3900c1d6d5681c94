// Package pricing holds the storefront's money rules: magazine sales tax,
// loyalty points earned and redeemed, and the catalogue reward figure.  All
// functions are pure.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/periodical-store/internal/model"
)

// ReviewApprovalPoints is the flat bonus granted the first time a review is
// approved.
const ReviewApprovalPoints int64 = 200

var (
	// TaxRate applies to magazine lines only.
	TaxRate = decimal.RequireFromString("0.0825")

	magazineRewardRate  = decimal.RequireFromString("0.10")
	newspaperRewardRate = decimal.RequireFromString("0.20")
)

var (
	ErrInvalidPoints      = errors.New("points must not be negative")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrPointsExceedTotal  = errors.New("points exceed order total")
)

// Line is one priced cart or order line.
type Line struct {
	Type      model.PublicationType
	UnitPrice decimal.Decimal
	Quantity  int
}

// Amount is UnitPrice × Quantity; a non-positive quantity counts as one.
func (l Line) Amount() decimal.Decimal {
	q := l.Quantity
	if q < 1 {
		q = 1
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(q)))
}

// Summary is the derived state of a set of lines before points.
type Summary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	PointsEarned int64           `json:"pointsEarned"`
	ItemCount    int             `json:"itemCount"`
}

// Summarize totals lines.  Tax is TaxRate of the magazine amount, rounded to
// cents once for the whole set.
func Summarize(lines []Line) Summary {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for _, l := range lines {
		amt := l.Amount()
		subtotal = subtotal.Add(amt)
		if l.Type == model.TypeMagazine {
			taxable = taxable.Add(amt)
		}
	}
	tax := taxable.Mul(TaxRate).Round(2)
	total := subtotal.Add(tax)
	return Summary{
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		PointsEarned: PointsFor(total),
		ItemCount:    len(lines),
	}
}

// Quote is a Summary with points applied.  Total = Subtotal + Tax -
// PointsUsed.
type Quote struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	PointsUsed   int64
	Total        decimal.Decimal
	PointsEarned int64
}

// ApplyPoints redeems pointsToUse against s for a user holding balance
// points.  One point redeems one dollar.
func ApplyPoints(s Summary, pointsToUse, balance int64) (Quote, error) {
	if pointsToUse < 0 {
		return Quote{}, ErrInvalidPoints
	}
	before := s.Subtotal.Add(s.Tax)
	if pointsToUse > 0 {
		if pointsToUse > balance {
			return Quote{}, ErrInsufficientPoints
		}
		if decimal.NewFromInt(pointsToUse).GreaterThan(before) {
			return Quote{}, ErrPointsExceedTotal
		}
	}
	total := before.Sub(decimal.NewFromInt(pointsToUse))
	return Quote{
		Subtotal:     s.Subtotal,
		Tax:          s.Tax,
		PointsUsed:   pointsToUse,
		Total:        total,
		PointsEarned: PointsFor(total),
	}, nil
}

// PointsFor is the number of points earned by paying total: one per whole
// dollar.
func PointsFor(total decimal.Decimal) int64 {
	if total.IsNegative() {
		return 0
	}
	return total.Floor().IntPart()
}

// RewardRate is the catalogue reward rate for a publication type.
func RewardRate(t model.PublicationType) decimal.Decimal {
	if t == model.TypeNewspaper {
		return newspaperRewardRate
	}
	return magazineRewardRate
}

// RewardPoints is floor(price × RewardRate), the figure the catalogue ranks
// by when sorting on points.
func RewardPoints(p model.Publication) int64 {
	return p.Price.Mul(RewardRate(p.Type)).Floor().IntPart()
}

// ProratedRefund returns price × remaining / total days, rounded to cents
// and clamped to [0, price].
func ProratedRefund(price decimal.Decimal, totalDays, remainingDays int64) decimal.Decimal {
	if totalDays <= 0 || remainingDays <= 0 {
		return decimal.Zero
	}
	if remainingDays > totalDays {
		remainingDays = totalDays
	}
	return price.Mul(decimal.NewFromInt(remainingDays)).Div(decimal.NewFromInt(totalDays)).Round(2)
}

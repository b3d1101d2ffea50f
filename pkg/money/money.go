package money

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Zero is the canonical "0.00" amount.
const Zero = "0.00"

// Multiply returns unitPrice * quantity as a string with two fraction
// digits. An unparseable unit price is treated as zero and logged.
func Multiply(unitPrice string, quantity int) string {
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		logrus.WithField("value", unitPrice).Warn("money: unparseable unit price, treating as zero")
		return Zero
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2)
}

// UnitPrice recovers the per-unit price from a line subtotal. A zero
// quantity yields decimal zero rather than a division error.
func UnitPrice(subtotal string, quantity int) decimal.Decimal {
	if quantity == 0 {
		return decimal.Zero
	}
	total, err := decimal.NewFromString(subtotal)
	if err != nil {
		logrus.WithField("value", subtotal).Warn("money: unparseable subtotal, treating as zero")
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(quantity)))
}

// Sum accumulates the given amounts into a two-fraction-digit string.
// Values that fail to parse contribute nothing and are logged; Sum
// itself never fails.
func Sum(values ...string) string {
	total := decimal.Zero
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			logrus.WithField("value", v).Warn("money: skipping unparseable amount")
			continue
		}
		total = total.Add(d)
	}
	return total.StringFixed(2)
}

// Times returns d * quantity with two fraction digits. Unlike
// Multiply it takes the exact decimal, so a unit price with more than
// two fraction digits does not round before the multiplication.
func Times(d decimal.Decimal, quantity int) string {
	return d.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2)
}

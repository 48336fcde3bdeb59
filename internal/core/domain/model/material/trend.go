package material

import (
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// Trend represents a material's price movement against the previous quote.
type Trend int

const (
	// TrendUnknown represents an invalid or undefined trend.
	TrendUnknown Trend = iota

	// TrendStable indicates the price did not move.
	TrendStable

	// TrendUp indicates the price increased.
	TrendUp

	// TrendDown indicates the price decreased.
	TrendDown
)

func getTrendStrings() map[Trend]string {
	return map[Trend]string{
		TrendUnknown: "unknown",
		TrendStable:  "stable",
		TrendUp:      "up",
		TrendDown:    "down",
	}
}

// TrendFromString parses the wire representation of a trend.
func TrendFromString(s string) (Trend, error) {
	for trend, str := range getTrendStrings() {
		if trend != TrendUnknown && str == s {
			return trend, nil
		}
	}
	return TrendUnknown, errs.NewValueIsInvalidErrorWithCause(
		"trend",
		fmt.Errorf("%q is not a valid trend", s),
	)
}

// Validate checks that the Trend carries one of the three valid values.
func (t Trend) Validate() error {
	if t != TrendStable && t != TrendUp && t != TrendDown {
		return errs.NewValueIsInvalidErrorWithCause(
			"trend",
			fmt.Errorf("%d is not a valid trend", t),
		)
	}
	return nil
}

// String returns the lowercase wire name of the trend.
func (t Trend) String() string {
	if str, ok := getTrendStrings()[t]; ok {
		return str
	}
	return "unknown"
}

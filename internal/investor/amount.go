package investor

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
	billion  = decimal.New(1, 9)
)

// magnitude suffixes, longest first so "MD" wins over "D".
var suffixes = []struct {
	suffix string
	scale  decimal.Decimal
}{
	{"MD", billion},
	{"B", billion},
	{"M", million},
	{"K", thousand},
}

// ParseAmount parses a euro amount written as a plain number or as a display
// string with a magnitude suffix: "2.5M€", "500K€", "1,2 Md€", "750000".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ToUpper(strings.TrimSpace(s))
	for _, sym := range []string{"€", "$", "EUR", "USD"} {
		clean = strings.ReplaceAll(clean, sym, "")
	}
	clean = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, clean)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q: empty", s)
	}

	scale := decimal.New(1, 0)
	for _, sfx := range suffixes {
		if strings.HasSuffix(clean, sfx.suffix) {
			clean = strings.TrimSuffix(clean, sfx.suffix)
			scale = sfx.scale
			break
		}
	}

	clean = normalizeSeparators(clean)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: negative", s)
	}
	return d.Mul(scale), nil
}

// normalizeSeparators rewrites digit grouping and decimal marks into a plain
// decimal. With both marks present the last one is the decimal mark:
// "1,250.5" and "1.250,5". A single mark of one kind is decimal ("1,2" is
// 1.2, so "1,250" reads as 1.25); a repeated mark is grouping: "1,250,000"
// and "1.250.000".
func normalizeSeparators(s string) string {
	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	default:
		return strings.Replace(s, ",", ".", 1)
	}
}

// FormatAmount renders an amount in the short card form.
func FormatAmount(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(billion):
		return d.Div(billion).Round(1).String() + "B€"
	case d.GreaterThanOrEqual(million):
		return d.Div(million).Round(1).String() + "M€"
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).Round(1).String() + "K€"
	default:
		return d.Round(0).String() + "€"
	}
}

// rawAmount holds the portfolio field as written in the file, number or
// string, until ingestion parses it.
type rawAmount string

func (a *rawAmount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: portfolio must be a scalar", node.Line)
	}
	*a = rawAmount(node.Value)
	return nil
}

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = rawAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("portfolio must be a number or string: %w", err)
	}
	*a = rawAmount(n.String())
	return nil
}

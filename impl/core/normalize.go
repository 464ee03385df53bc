package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/biter777/countries"
)

var skuPrefixes = []string{"Standard_", "standard_", "Basic_", "basic_"}

// NormalizeSkuName strips the tier prefix and returns the bare name, a display
// name with spaces and the ordered unique search terms to try upstream.
func NormalizeSkuName(sku string) (string, string, []string) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return "", "", nil
	}

	bare := sku
	for _, prefix := range skuPrefixes {
		if strings.HasPrefix(bare, prefix) {
			bare = strings.TrimPrefix(bare, prefix)
			break
		}
	}
	display := strings.ReplaceAll(bare, "_", " ")

	terms := make([]string, 0, 3)
	seen := make(map[string]bool)
	for _, term := range []string{strings.ReplaceAll(bare, " ", "_"), display, bare} {
		if term != "" && !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}
	return bare, display, terms
}

// NormalizeCurrency validates an ISO 4217 code; an empty code yields def.
func NormalizeCurrency(code, def string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return def, nil
	}
	currency := countries.CurrencyCodeByName(code)
	if !currency.IsValid() || len(code) != 3 {
		return "", fmt.Errorf("%w: unknown currency code %q", ErrInvalidInput, code)
	}
	return currency.Alpha(), nil
}

// formatPrice renders value with the minor-unit digits of the currency.
func formatPrice(value float64, currencyCode string) string {
	digits := 2
	if currency := countries.CurrencyCodeByName(currencyCode); currency.IsValid() {
		if d := currency.Digits(); d >= 0 {
			digits = d
		}
	}
	return strconv.FormatFloat(roundTo(value, digits), 'f', digits, 64)
}

func roundTo(value float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(value*p) / p
}

func round2(value float64) float64 {
	return roundTo(value, 2)
}

func round6(value float64) float64 {
	return roundTo(value, 6)
}

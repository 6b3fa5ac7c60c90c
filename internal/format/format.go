// Package format renders prices and dates for the storefront.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencySuffix = "FCFA"

var (
	printer = message.NewPrinter(language.French)

	// CLDR French grouping uses non-breaking spaces; the storefront wants a
	// plain space.
	spaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

	months = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// Price formats an amount with French thousands grouping, no decimals and the
// currency suffix: Price(45000) == "45 000 FCFA".
func Price(amount float64) string {
	n := int64(math.Round(amount))
	return spaces.Replace(printer.Sprintf("%d", n)) + " " + CurrencySuffix
}

// Date renders a French long date, e.g. "19 octobre 2026".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

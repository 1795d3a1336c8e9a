// Package format holds the rendering helpers shared by every price, duration
// and timestamp shown to the user, so rounding and fallback policy is defined
// in exactly one place.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

type FormattingError struct {
	Currency string
}

func (e *FormattingError) Error() string {
	if e.Currency == "" {
		return "currency code is missing"
	}
	return "unrecognized currency code: " + e.Currency
}

// Duration renders total minutes as "{hours}h {minutes}m" with integer
// division and no rounding. Duration(0) is "0h 0m".
func Duration(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// dateTimeLayout mirrors the en-GB short form: short weekday, 2-digit day,
// short month, 24h hour:minute.
const dateTimeLayout = "Mon, 02 Jan, 15:04"

// DateTime renders the timestamp in its own offset, never the server's local
// zone, so output is stable wherever the process runs.
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// Money renders an amount in en-GB conventions with the currency's own symbol
// and decimal scale. A missing or unrecognized currency code yields a
// FormattingError; callers render through MoneyOrFallback instead of
// surfacing that to the user.
func Money(amount float64, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", &FormattingError{Currency: code}
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", &FormattingError{Currency: code}
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount))), nil
}

// MoneyOrFallback substitutes the configured neutral currency when the
// offer's own code cannot be formatted.
func MoneyOrFallback(amount float64, code, fallback string) string {
	if s, err := Money(amount, code); err == nil {
		return s
	}
	if s, err := Money(amount, fallback); err == nil {
		return s
	}
	return fmt.Sprintf("%s %.2f", fallback, amount)
}

// Emissions renders kilograms of CO2 without trailing zeros, so a reported
// zero reads "0 kg". Unknown emissions are the caller's concern; nothing is
// rendered for them here.
func Emissions(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + " kg"
}

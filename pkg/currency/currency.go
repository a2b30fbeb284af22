// Package currency renders monetary amounts for a currency and locale.
package currency

import (
	"strings"

	bcurrency "github.com/bojanz/currency"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
)

// Formatter formats amounts for a fixed currency and locale using CLDR
// symbol placement, separators and negative patterns.
type Formatter struct {
	code  string
	tag   language.Tag
	fmtr  *bcurrency.Formatter
	scale int
}

// NewFormatter resolves an ISO 4217 code and a locale such as "en_AU" or "pt-BR".
func NewFormatter(code, locale string) (*Formatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	digits, ok := bcurrency.GetDigits(code)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency code").
			WithDetails(map[string]any{"currency": code})
	}

	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown locale").
			WithDetails(map[string]any{"locale": locale})
	}

	fmtr := bcurrency.NewFormatter(bcurrency.NewLocale(tag.String()))
	fmtr.MinDigits = bcurrency.DefaultDigits
	fmtr.MaxDigits = bcurrency.DefaultDigits

	return &Formatter{
		code:  code,
		tag:   tag,
		fmtr:  fmtr,
		scale: int(digits),
	}, nil
}

// Code returns the ISO 4217 code.
func (f *Formatter) Code() string {
	return f.code
}

// Locale returns the BCP 47 form of the locale.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Scale returns the number of fraction digits shown.
func (f *Formatter) Scale() int {
	return f.scale
}

// Format renders amount with grouping, decimal mark and symbol for the locale.
// The amount is rounded half away from zero to the currency scale and handed
// over as a decimal string, so large values keep every digit.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale)).StringFixed(int32(f.scale))
	value, err := bcurrency.NewAmount(rounded, f.code)
	if err != nil {
		// code was validated in NewFormatter and StringFixed always yields a number.
		return rounded + " " + f.code
	}
	return f.fmtr.Format(value)
}

// Format is a one-off shorthand for NewFormatter(code, locale).Format(amount).
func Format(amount decimal.Decimal, code, locale string) (string, error) {
	f, err := NewFormatter(code, locale)
	if err != nil {
		return "", err
	}
	return f.Format(amount), nil
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

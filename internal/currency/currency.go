package currency

import "strings"

// Currency is an ISO-4217 code paired with its display symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

const DefaultCode = "USD"

var table = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "MXN", Symbol: "Mex$", Name: "Mexican Peso"},
}

var index = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, c := range table {
		m[c.Code] = i
	}
	return m
}()

// All returns the supported currencies in display order.
func All() []Currency {
	out := make([]Currency, len(table))
	copy(out, table)
	return out
}

// Default returns the fallback currency used for unknown codes.
func Default() Currency {
	return table[0]
}

// Lookup resolves a code to its table entry. Unknown or empty codes
// resolve to the default entry.
func Lookup(code string) Currency {
	if i, ok := index[normalize(code)]; ok {
		return table[i]
	}
	return Default()
}

// Known reports whether code is in the table.
func Known(code string) bool {
	_, ok := index[normalize(code)]
	return ok
}

// Symbol returns the display symbol for code, "$" when unknown.
func Symbol(code string) string {
	return Lookup(code).Symbol
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

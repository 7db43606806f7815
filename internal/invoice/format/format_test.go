package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		symbol string
		want   string
	}{
		{12.345, "$", "$12.35"},
		{0, "€", "€0.00"},
		{137.5, "$", "$137.50"},
		{1.005, "£", "£1.01"},
		{2.5, "Mex$", "Mex$2.50"},
		{-5.455, "$", "$-5.46"},
		{1234567.891, "₹", "₹1234567.89"},
		{math.NaN(), "$", "$0.00"},
		{math.Inf(-1), "$", "$0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCurrency(tc.amount, tc.symbol))
		})
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	issued := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)

	got, err := FormatInvoiceNumber(DefaultInvoiceNumberTemplate, issued, 1)
	require.NoError(t, err)
	assert.Equal(t, "INV-001", got)

	got, err = FormatInvoiceNumber("INV-{YYYY}{MM}{DD}-{SEQ4}", issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-20240307-0042", got)

	_, err = FormatInvoiceNumber("", issued, 1)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{SEQ}", issued, 0)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{NOPE}", issued, 1)
	assert.Error(t, err)
}

func TestFormatStampDate(t *testing.T) {
	assert.Equal(t, "15-01-2024", FormatStampDate("2024-01-15"))
	assert.Equal(t, "soon", FormatStampDate("soon"))
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "Jan 15, 2024", FormatDisplayDate("2024-01-15"))
	assert.Equal(t, "", FormatDisplayDate(""))
}

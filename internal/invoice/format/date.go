package format

import (
	"strings"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

// FormatStampDate renders a YYYY-MM-DD date as DD-MM-YYYY for paid
// markers. Unparseable input is returned unchanged.
func FormatStampDate(raw string) string {
	t, err := domain.ParseDate(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return t.Format("02-01-2006")
}

// FormatDisplayDate renders a YYYY-MM-DD date as "Jan 2, 2006".
// Empty input yields "".
func FormatDisplayDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return t.Format("Jan 2, 2006")
}

package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DefaultInvoiceNumberTemplate = "INV-{SEQ3}"

var (
	ErrEmptyNumberTemplate = errors.New("invoice number template is empty")
	ErrInvalidSequence     = errors.New("invoice sequence must be positive")
)

// numberToken matches {NAME} or {NAMEwidth}, e.g. {YYYY} or {SEQ4}.
var numberToken = regexp.MustCompile(`\{([A-Z]+)(\d*)\}`)

// dateTokens map template tokens onto time layouts.
var dateTokens = map[string]string{
	"YYYY": "2006",
	"YY":   "06",
	"MM":   "01",
	"DD":   "02",
}

// FormatInvoiceNumber expands a numbering template such as
// "INV-{YYYY}-{SEQ4}" for a draft issued at issuedAt with sequence seq.
// The result is a suggestion; numbers are never checked for uniqueness.
func FormatInvoiceNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", ErrEmptyNumberTemplate
	}
	if seq <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSequence, seq)
	}

	var unresolved string
	out := numberToken.ReplaceAllStringFunc(template, func(tok string) string {
		m := numberToken.FindStringSubmatch(tok)
		name, width := m[1], m[2]

		if layout, ok := dateTokens[name]; ok && width == "" {
			return issuedAt.Format(layout)
		}
		if name == "SEQ" {
			if width == "" {
				return strconv.FormatInt(seq, 10)
			}
			if w, err := strconv.Atoi(width); err == nil && w > 0 {
				return fmt.Sprintf("%0*d", w, seq)
			}
		}
		if unresolved == "" {
			unresolved = tok
		}
		return tok
	})

	if unresolved == "" && strings.ContainsAny(out, "{}") {
		unresolved = out
	}
	if unresolved != "" {
		return "", fmt.Errorf("unresolved token %s in invoice number template %q", unresolved, template)
	}
	return out, nil
}

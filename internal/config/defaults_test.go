package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefaults(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoicely.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsHolderMergesFileOverBuiltins(t *testing.T) {
	path := writeDefaults(t, `
invoice:
  currency: EUR
  taxRate: 19
  company:
    name: Acme GmbH
`)

	holder, err := NewDefaultsHolder(Config{DefaultsFile: path})
	require.NoError(t, err)

	got := holder.Get()
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, 19.0, got.TaxRate)
	assert.Equal(t, "Acme GmbH", got.Company.Name)
	assert.Equal(t, "Client Company Name", got.Client.Name)
	assert.Len(t, got.Items, 3)
	assert.Equal(t, 30, got.DueInDays)
}

func TestDefaultsHolderRejectsInvalidFile(t *testing.T) {
	path := writeDefaults(t, `
invoice:
  template: neon
`)

	_, err := NewDefaultsHolder(Config{DefaultsFile: path})
	assert.Error(t, err)
}

func TestDefaultInvoiceDefaultsAreValid(t *testing.T) {
	assert.NoError(t, validateDefaults(DefaultInvoiceDefaults()))
	assert.Equal(t, "Your Company Name", NewStaticDefaultsHolder(DefaultInvoiceDefaults()).Get().Company.Name)
}

func TestNormalizeDriver(t *testing.T) {
	assert.Equal(t, StorageDriverSQL, normalizeDriver("DB"))
	assert.Equal(t, StorageDriverRedis, normalizeDriver("redis"))
	assert.Equal(t, StorageDriverFile, normalizeDriver("whatever"))
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	for _, typ := range []string{TypeMySQL, TypePostgres, TypeSQLite, TypeSQLite3, " SQLite "} {
		t.Run(typ, func(t *testing.T) {
			d, err := Dialect(Config{Type: typ, Host: "localhost", Port: "5432", Name: "invoicely"})
			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}

	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}

func TestDialectNames(t *testing.T) {
	d, err := Dialect(Config{Type: TypePostgres})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialect(Config{Type: TypeSQLite})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

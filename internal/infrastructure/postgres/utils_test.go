package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
)

func TestViolationCodes(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestIsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"uuid mal formado", fmt.Errorf("get product: %w", &pgconn.PgError{Code: "22P02"}), true},
		{"fuera de rango", &pgconn.PgError{Code: "22003"}, true},
		{"check violation", &pgconn.PgError{Code: "23514"}, true},
		{"fk", &pgconn.PgError{Code: "23503"}, false},
		{"sin código pg", errors.New("22003"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isInvalidData(tt.err))
		})
	}
}

func TestMapResellerWriteErr(t *testing.T) {
	assert.NoError(t, mapResellerWriteErr("insert reseller", nil))
	assert.ErrorIs(t, mapResellerWriteErr("insert reseller", &pgconn.PgError{Code: "23503"}), domain.ErrNotFound)
	assert.ErrorIs(t, mapResellerWriteErr("insert reseller", &pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapResellerWriteErr("update reseller", &pgconn.PgError{Code: "22P02"}), domain.ErrInvalidInput)

	err := mapResellerWriteErr("update reseller", errors.New("conn reset"))
	assert.ErrorContains(t, err, "update reseller")
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("abc")
	if assert.NotNil(t, v) {
		assert.Equal(t, "abc", *v)
	}
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "abc", deref(v))
}

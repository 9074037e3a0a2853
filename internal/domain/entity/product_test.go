package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"45", true},
		{"42.50", true},
		{"0.01", true},
		{"9999999999.99", true},
		{"0", false},
		{"-1", false},
		{"0.004", false},
		{"1.005", false},
		{"10000000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.ValidAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

func TestBuildLedgerQuery_SinFiltros(t *testing.T) {
	query, args := buildLedgerQuery(repository.LedgerFilter{})
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY e.created_at DESC")
	assert.Empty(t, args)
}

func TestBuildLedgerQuery_Placeholders(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args := buildLedgerQuery(repository.LedgerFilter{
		ResellerID: "r1",
		Kind:       entity.KindReturn,
		From:       &from,
	})
	assert.Contains(t, query, "e.reseller_id = $1 AND e.kind = $2 AND e.created_at >= $3")
	assert.Equal(t, []any{"r1", "devolucao", from}, args)
}

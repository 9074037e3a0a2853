package stock_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

func entry(resellerID, resellerName, productID, productName string, kind entity.EntryKind, qty int) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ResellerID: resellerID, ResellerName: resellerName,
		ProductID: productID, ProductName: productName,
		Kind: kind, Quantity: qty,
	}
}

func TestAggregate_EjemploEntregasYDevolucion(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("r1", "R1", "p1", "P1", entity.KindDelivery, 10),
		entry("r1", "R1", "p1", "P1", entity.KindDelivery, 5),
		entry("r1", "R1", "p1", "P1", entity.KindReturn, 3),
	}

	got := stock.Aggregate(entries).ByName()

	assert.Equal(t, map[string]map[string]int{"R1": {"P1": 12}}, got)
}

func TestAggregate_Idempotente(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 4),
		entry("r2", "Bia", "p1", "Blusa", entity.KindDelivery, 2),
		entry("r1", "Ana", "p2", "Saia", entity.KindDelivery, 7),
		entry("r1", "Ana", "p2", "Saia", entity.KindReturn, 1),
	}

	first := stock.Aggregate(entries)
	second := stock.Aggregate(entries)

	assert.Equal(t, first.ByName(), second.ByName())
	assert.Equal(t, first.Lines(), second.Lines())
}

func TestAggregate_IndependienteDelOrden(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 4),
		entry("r1", "Ana", "p1", "Blusa", entity.KindReturn, 9),
		entry("r2", "Bia", "p1", "Blusa", entity.KindDelivery, 2),
		entry("r1", "Ana", "p2", "Saia", entity.KindDelivery, 7),
		entry("r2", "Bia", "p2", "Saia", entity.KindReturn, 1),
	}
	want := stock.Aggregate(entries).ByName()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]*entity.LedgerEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, stock.Aggregate(shuffled).ByName())
	}
}

func TestAggregate_NetoCeroSeExcluyeDeInStock(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 6),
		entry("r1", "Ana", "p1", "Blusa", entity.KindReturn, 6),
		entry("r1", "Ana", "p2", "Saia", entity.KindDelivery, 1),
	}
	g := stock.Aggregate(entries)

	net, ok := g.Net("r1", "p1")
	require.True(t, ok)
	assert.Zero(t, net)

	in := g.InStock()
	require.Len(t, in, 1)
	assert.Equal(t, "p2", in[0].ProductID)
	assert.Equal(t, 2, g.Len(), "la posición en cero sigue existiendo en el ledger")
}

func TestAggregate_NetoNegativoSinPiso(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 2),
		entry("r1", "Ana", "p1", "Blusa", entity.KindReturn, 5),
	}
	g := stock.Aggregate(entries)

	net, ok := g.Net("r1", "p1")
	require.True(t, ok)
	assert.Equal(t, -3, net)

	in := g.InStock()
	require.Len(t, in, 1, "los negativos se informan en la vista de estoque")
	assert.Equal(t, -3, in[0].Net())
}

func TestAggregate_SacoleiraSinLancamentosNoAparece(t *testing.T) {
	g := stock.Aggregate([]*entity.LedgerEntry{
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 1),
	})

	_, ok := g.Net("r2", "p1")
	assert.False(t, ok)
	assert.NotContains(t, g.ByName(), "Bia")
}

func TestAggregate_Vacio(t *testing.T) {
	g := stock.Aggregate(nil)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.ByName())
	assert.Empty(t, g.InStock())
}

func TestLines_OrdenadasPorSacoleiraYProducto(t *testing.T) {
	g := stock.Aggregate([]*entity.LedgerEntry{
		entry("r2", "Bia", "p2", "Saia", entity.KindDelivery, 1),
		entry("r1", "Ana", "p2", "Saia", entity.KindDelivery, 1),
		entry("r1", "Ana", "p1", "Blusa", entity.KindDelivery, 1),
	})
	lines := g.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Ana/Blusa", "Ana/Saia", "Bia/Saia"}, []string{
		lines[0].ResellerName + "/" + lines[0].ProductName,
		lines[1].ResellerName + "/" + lines[1].ProductName,
		lines[2].ResellerName + "/" + lines[2].ProductName,
	})
}

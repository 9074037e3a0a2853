package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lançamentos sobre PostgreSQL. Solo INSERT y SELECT: la tabla es append-only.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerSelect = `
	SELECT e.id, e.product_id, p.name, e.reseller_id, r.name, e.kind, e.quantity,
		e.unit_value, e.total, e.note, e.paid, e.created_by, e.created_at
	FROM ledger_entries e
	JOIN products p ON p.id = e.product_id
	JOIN resellers r ON r.id = e.reseller_id`

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var (
		e         entity.LedgerEntry
		kind      string
		createdBy *string
	)
	if err := row.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.ResellerID, &e.ResellerName, &kind,
		&e.Quantity, &e.UnitValue, &e.Total, &e.Note, &e.Paid, &createdBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Kind = entity.EntryKind(kind)
	e.CreatedBy = deref(createdBy)
	return &e, nil
}

// Create inserta el lançamento en una única sentencia.
// Producto o sacoleira inexistentes (FK) → ErrNotFound; valor rechazado por la base
// (rango, CHECK) → ErrInvalidInput. En ambos casos nada queda aplicado.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, product_id, reseller_id, kind, quantity, unit_value, total, note, paid, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.ResellerID, string(e.Kind), e.Quantity, e.UnitValue, e.Total,
		e.Note, e.Paid, nullIfEmpty(e.CreatedBy), e.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isInvalidData(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un lançamento por ID.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, ledgerSelect+` WHERE e.id = $1`, id))
	if err != nil {
		// id mal formado (22P02): no existe
		if errors.Is(err, pgx.ErrNoRows) || isInvalidData(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// List lançamentos filtrados, más recientes primero.
func (r *LedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query, args := buildLedgerQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// buildLedgerQuery arma el WHERE con placeholders numerados según los campos presentes.
func buildLedgerQuery(f repository.LedgerFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ResellerID != "" {
		add("e.reseller_id = $%d", f.ResellerID)
	}
	if f.ProductID != "" {
		add("e.product_id = $%d", f.ProductID)
	}
	if f.Kind != "" {
		add("e.kind = $%d", string(f.Kind))
	}
	if f.From != nil {
		add("e.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("e.created_at <= $%d", *f.To)
	}
	query := ledgerSelect
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	return query + "\n\tORDER BY e.created_at DESC, e.id", args
}

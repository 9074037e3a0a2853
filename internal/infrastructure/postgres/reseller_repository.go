package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

var _ repository.ResellerRepository = (*ResellerRepo)(nil)

// ResellerRepo implementación del puerto ResellerRepository sobre PostgreSQL.
type ResellerRepo struct {
	q Querier
}

// NewResellerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResellerRepository(q Querier) *ResellerRepo {
	return &ResellerRepo{q: q}
}

const resellerSelect = `
	SELECT id, name, national_id, phone, email, address, user_id, created_at, updated_at
	FROM resellers`

func scanReseller(row pgx.Row) (*entity.Reseller, error) {
	var (
		rs     entity.Reseller
		userID *string
	)
	if err := row.Scan(&rs.ID, &rs.Name, &rs.NationalID, &rs.Phone, &rs.Email, &rs.Address,
		&userID, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
		return nil, err
	}
	rs.UserID = deref(userID)
	return &rs, nil
}

// Create persiste una sacoleira. Usuario inexistente → ErrNotFound; usuario ya vinculado → ErrDuplicate.
func (r *ResellerRepo) Create(ctx context.Context, rs *entity.Reseller) error {
	query := `
		INSERT INTO resellers (id, name, national_id, phone, email, address, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rs.ID, rs.Name, rs.NationalID, rs.Phone, rs.Email, rs.Address,
		nullIfEmpty(rs.UserID), rs.CreatedAt, rs.UpdatedAt,
	)
	return mapResellerWriteErr("insert reseller", err)
}

// GetByID obtiene una sacoleira por ID.
func (r *ResellerRepo) GetByID(ctx context.Context, id string) (*entity.Reseller, error) {
	return r.getOne(ctx, resellerSelect+` WHERE id = $1`, id)
}

// GetByUserID obtiene la sacoleira vinculada al usuario.
func (r *ResellerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Reseller, error) {
	return r.getOne(ctx, resellerSelect+` WHERE user_id = $1`, userID)
}

func (r *ResellerRepo) getOne(ctx context.Context, query, arg string) (*entity.Reseller, error) {
	rs, err := scanReseller(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		// id mal formado (22P02): no existe
		if errors.Is(err, pgx.ErrNoRows) || isInvalidData(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reseller: %w", err)
	}
	return rs, nil
}

// Update actualiza los datos de la sacoleira.
func (r *ResellerRepo) Update(ctx context.Context, rs *entity.Reseller) error {
	query := `
		UPDATE resellers SET name = $2, national_id = $3, phone = $4, email = $5, address = $6,
			user_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rs.ID, rs.Name, rs.NationalID, rs.Phone, rs.Email, rs.Address, nullIfEmpty(rs.UserID), rs.UpdatedAt,
	)
	if err := mapResellerWriteErr("update reseller", err); err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista sacoleiras por nombre.
func (r *ResellerRepo) List(ctx context.Context) ([]*entity.Reseller, error) {
	rows, err := r.q.Query(ctx, resellerSelect+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list resellers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Reseller, 0)
	for rows.Next() {
		rs, err := scanReseller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reseller: %w", err)
		}
		list = append(list, rs)
	}
	return list, rows.Err()
}

// Delete elimina una sacoleira. Con lançamentos la FK lo impide → ErrConflict.
func (r *ResellerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM resellers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete reseller: %w", err)
	}
	return nil
}

func mapResellerWriteErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isInvalidData(err):
		return domain.ErrInvalidInput
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// productSelect resuelve el nombre de categoría con LEFT JOIN; sin categoría queda NULL
// y scanProduct aplica UncategorizedName.
const productSelect = `
	SELECT p.id, p.name, p.category_id, c.name, p.price, p.min_stock, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p            entity.Product
		categoryID   *string
		categoryName *string
	)
	if err := row.Scan(&p.ID, &p.Name, &categoryID, &categoryName, &p.Price, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.CategoryName = deref(categoryName)
	if p.CategoryName == "" {
		p.CategoryName = entity.UncategorizedName
	}
	return &p, nil
}

// Create persiste un nuevo producto. Categoría inexistente → ErrNotFound.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, price, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.CategoryID), p.Price, p.MinStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isInvalidData(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		// id mal formado (22P02): no existe
		if errors.Is(err, pgx.ErrNoRows) || isInvalidData(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, categoría, precio y mínimo.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, price = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.CategoryID), p.Price, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isInvalidData(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY p.name, p.id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListAll lista el catálogo completo (vistas de estoque).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY p.name, p.id`)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByCategory cuenta los productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID. Con lançamentos la FK lo impide → ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isInvalidData verifica si Postgres rechazó el valor: data exception (clase 22, p.ej.
// 22P02 uuid mal formado, 22003 fuera de rango) o check violation (23514).
func isInvalidData(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "22") || pgErr.Code == "23514"
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// nullIfEmpty mapea "" a NULL para columnas opcionales (FK nullable).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref devuelve "" para NULL.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

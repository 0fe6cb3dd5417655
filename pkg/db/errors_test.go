package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr), "orders_order_number_key"))
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.False(t, IsUniqueViolation(pgErr, "users_email_key"))

	pqErr := &pq.Error{Code: "23505", Constraint: "categories_slug_key"}
	assert.True(t, IsUniqueViolation(pqErr, "categories_slug_key"))

	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: orders.order_number"), ""))
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "users_email_key"`), "users_email_key"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}

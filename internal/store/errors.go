package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/storefront/internal/model"
)

// constraintByColumns maps SQLite's "table.column" report to the
// constraint names callers branch on.
var constraintByColumns = map[string]string{
	"stores.owner_id": model.ConstraintStoreOwner,
	"stores.slug":     model.ConstraintStoreSlug,
	"profiles.id":     model.ConstraintProfileID,
	"products.id":     model.ConstraintProductStore,
}

// classify converts a driver error into a *model.BackendError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var be *model.BackendError
	if errors.As(err, &be) {
		return err
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return model.UniqueViolation(constraintName(se.Error()), err)
		}
	}
	return model.Other(err)
}

// constraintName extracts the violated constraint from a message such as
// "UNIQUE constraint failed: stores.slug".
func constraintName(msg string) string {
	_, cols, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return ""
	}
	cols = strings.TrimSpace(cols)
	if name, ok := constraintByColumns[cols]; ok {
		return name
	}
	return cols
}

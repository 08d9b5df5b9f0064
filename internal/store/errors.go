package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

const (
	ruleForeignKey = "foreign_key"
	ruleNotNull    = "not_null"
	ruleUnique     = "unique"
	ruleCheck      = "check"
)

// translate maps driver failures onto the typed errors of the store
func (s *Store) translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *storeerr.Error
	if errors.As(err, &se) {
		return storeerr.WithOp(op, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storeerr.New(storeerr.NotFound, op, err)
	}

	var sqlErr sqlite3.Error
	if !errors.As(err, &sqlErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch sqlErr.Code {
	case sqlite3.ErrConstraint:
		return storeerr.Violation(op, s.constraintRule(sqlErr), err)
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr,
		sqlite3.ErrReadonly, sqlite3.ErrFull, sqlite3.ErrCorrupt, sqlite3.ErrNotADB:
		return storeerr.New(storeerr.StorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// constraintRule names the catalog rule behind a constraint failure
func (s *Store) constraintRule(sqlErr sqlite3.Error) string {
	msg := sqlErr.Error()
	switch sqlErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		table, cols := parseColumns(strings.TrimPrefix(msg, "UNIQUE constraint failed: "))
		if rule := s.cat.UniqueRule(table, cols); rule != "" {
			return rule
		}
		return ruleUnique
	case sqlite3.ErrConstraintCheck:
		name := strings.TrimPrefix(msg, "CHECK constraint failed: ")
		if s.cat.CheckRule(name) {
			return name
		}
		return ruleCheck
	case sqlite3.ErrConstraintForeignKey:
		return ruleForeignKey
	case sqlite3.ErrConstraintNotNull:
		return ruleNotNull
	}
	return ""
}

// parseColumns splits "T.a, T.b" into the table and its columns
func parseColumns(list string) (string, []string) {
	var table string
	var cols []string
	for _, part := range strings.Split(list, ",") {
		t, c, ok := strings.Cut(strings.TrimSpace(part), ".")
		if !ok {
			continue
		}
		table = t
		cols = append(cols, c)
	}
	return table, cols
}

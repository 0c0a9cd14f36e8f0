package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/crypto/bcrypt"

	"github.com/LekaAli/fes/pkg/pg"
)

// Op tags a mutation. The zero value defaults to OpAdd.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var (
	ErrNilEntity     = errors.New("mutation entity is nil")
	ErrMissingFields = errors.New("mutation has no fields to apply")
)

// Mutation is a staged write against one entity. For OpAdd the entity is a
// freshly built row; for OpUpdate and OpDelete it must already be loaded
// from the store. Fields is the column -> value set for OpAdd credential
// handling and OpUpdate assignment; OpDelete ignores it.
type Mutation struct {
	Op     Op
	Entity any
	Fields map[string]any
}

// credentialEntity is implemented by entities that carry a one-way hashed
// credential. A plaintext "password" field in Mutation.Fields is consumed
// and hashed before the row is written; it never reaches the store.
type credentialEntity interface {
	SetPasswordHash(hash string)
}

// Gateway centralizes every write path: stage the mutation, then commit it
// as one store transaction.
type Gateway struct {
	*pg.DB
}

func NewGateway(db *pg.DB) *Gateway {
	return &Gateway{
		db,
	}
}

func (g *Gateway) Apply(ctx context.Context, m Mutation) error {
	op := m.Op
	if op == "" {
		op = OpAdd
	}

	if isNilEntity(m.Entity) {
		return ErrNilEntity
	}

	if ce, ok := m.Entity.(credentialEntity); ok {
		if pw, ok := m.Fields["password"].(string); ok && pw != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash credential: %w", err)
			}
			ce.SetPasswordHash(string(hash))
			delete(m.Fields, "password")
		}
	}

	return g.WithinTransaction(ctx, func(ctx context.Context) error {
		switch op {
		case OpAdd:
			return g.Write(ctx).Create(m.Entity).Error
		case OpUpdate:
			if len(m.Fields) == 0 {
				return ErrMissingFields
			}
			return g.Write(ctx).Model(m.Entity).Updates(m.Fields).Error
		case OpDelete:
			return g.Write(ctx).Delete(m.Entity).Error
		default:
			return fmt.Errorf("unknown operation %q", op)
		}
	})
}

func isNilEntity(e any) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}

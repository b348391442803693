package persistence

import (
	"context"

	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs functions inside a database transaction. The open
// transaction rides in the context, so repositories called within the
// function automatically join it.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by the given database
func NewTxManager(db *Database) *TxManager {
	return &TxManager{db: db.DB}
}

// Transaction executes fn inside a transaction. Nested calls join the
// transaction already carried by the context instead of opening a new one.
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// conn returns the connection to use for the given context, preferring an
// open transaction over the shared pool
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

var _ shared.Tx = (*TxManager)(nil)

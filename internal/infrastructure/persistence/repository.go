// Package persistence implements the domain repositories on GORM/Postgres.
//
// Every repository over a vendor-owned table goes through scopedRepo, the
// single place where vendor filtering is enforced. A lookup that lands on
// another vendor's row fails exactly like a lookup for a row that does not
// exist, so callers cannot distinguish the two.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/niorc/backend/internal/infrastructure/persistence/vendorscope"
	"gorm.io/gorm"
)

// ownedPtr constrains PT to a pointer to T that implements shared.Owned
type ownedPtr[T any] interface {
	*T
	shared.Owned
}

// scopedRepo provides vendor-scoped CRUD over one owned table.
// Per-entity repositories embed it and add their bespoke queries.
type scopedRepo[T any, PT ownedPtr[T]] struct {
	db *gorm.DB

	// columns eligible for ORDER BY; anything else falls back to the default
	orderColumns map[string]bool
	defaultOrder string

	// columns matched by Filter.Search with ILIKE
	searchColumns []string
}

func newScopedRepo[T any, PT ownedPtr[T]](db *gorm.DB, defaultOrder string, orderColumns []string, searchColumns []string) scopedRepo[T, PT] {
	cols := make(map[string]bool, len(orderColumns))
	for _, c := range orderColumns {
		cols[c] = true
	}
	return scopedRepo[T, PT]{
		db:            db,
		orderColumns:  cols,
		defaultOrder:  defaultOrder,
		searchColumns: searchColumns,
	}
}

func (r *scopedRepo[T, PT]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func (r *scopedRepo[T, PT]) scoped(ctx context.Context, vendorID uuid.UUID) *gorm.DB {
	var model T
	return r.conn(ctx).Model(&model).Scopes(vendorscope.Scope(vendorID))
}

// findByID looks up one row within the vendor's scope
func (r *scopedRepo[T, PT]) findByID(ctx context.Context, vendorID, id uuid.UUID) (PT, error) {
	var entity T
	if err := r.conn(ctx).
		Where("vendor_id = ? AND id = ?", vendorID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// findAll returns the vendor's rows matching the filter
func (r *scopedRepo[T, PT]) findAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.scoped(ctx, vendorID), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// count counts the vendor's rows matching the filter
func (r *scopedRepo[T, PT]) count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scoped(ctx, vendorID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// create inserts a new row stamped with the vendor. A vendor reference
// already present on the entity is kept only when it matches; a mismatch
// means the caller is trying to write into another vendor's scope.
func (r *scopedRepo[T, PT]) create(ctx context.Context, vendorID uuid.UUID, entity PT) error {
	entity.StampVendor(vendorID)
	if entity.VendorRef() != vendorID {
		return shared.ErrNotFound
	}
	return r.conn(ctx).Create(entity).Error
}

// save updates an existing row after verifying it is inside the vendor's
// scope. Updating a row the vendor does not own reports NOT_FOUND.
func (r *scopedRepo[T, PT]) save(ctx context.Context, vendorID uuid.UUID, entity PT) error {
	if entity.VendorRef() != vendorID {
		return shared.ErrNotFound
	}
	result := r.conn(ctx).
		Model(entity).
		Where("vendor_id = ? AND id = ?", vendorID, entity.GetID()).
		Select("*").
		Omit("id", "vendor_id", "created_at").
		Updates(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// delete removes a row within the vendor's scope
func (r *scopedRepo[T, PT]) delete(ctx context.Context, vendorID, id uuid.UUID) error {
	var model T
	result := r.conn(ctx).Delete(&model, "vendor_id = ? AND id = ?", vendorID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies search, ordering and pagination to the query
func (r *scopedRepo[T, PT]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)
	query = query.Order(r.sanitizeOrder(filter))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

func (r *scopedRepo[T, PT]) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" || len(r.searchColumns) == 0 {
		return query
	}
	pattern := "%" + filter.Search + "%"
	clause := make([]string, len(r.searchColumns))
	args := make([]any, len(r.searchColumns))
	for i, col := range r.searchColumns {
		clause[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clause, " OR "), args...)
}

// sanitizeOrder builds the ORDER BY expression from whitelisted columns
// only, so filter input can never reach the SQL text
func (r *scopedRepo[T, PT]) sanitizeOrder(filter shared.Filter) string {
	column := filter.OrderBy
	if !r.orderColumns[column] {
		column = r.defaultOrder
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}

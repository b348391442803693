package vendorscope

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VendorCallback provides GORM callback hooks for automatic vendor filtering.
// Repositories already scope every query explicitly; the callback re-applies
// the filter at the statement level so a query that bypasses the repository
// path still cannot cross vendors, and a query over an owned table with no
// vendor id in context and no explicit vendor condition is refused with
// ErrVendorIDRequired. Only registered owned tables are touched, the
// profiles table has no vendor_id column and must stay unfiltered.
type VendorCallback struct {
	vendorColumn string
	ownedTables  map[string]bool
}

// NewVendorCallback creates a callback guarding the given owned tables
func NewVendorCallback(ownedTables ...string) *VendorCallback {
	owned := make(map[string]bool, len(ownedTables))
	for _, t := range ownedTables {
		owned[t] = true
	}
	return &VendorCallback{
		vendorColumn: "vendor_id",
		ownedTables:  owned,
	}
}

// RegisterCallbacks registers vendor callbacks with GORM
func (vc *VendorCallback) RegisterCallbacks(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("vendorscope:before_query", vc.beforeQuery)
	_ = db.Callback().Update().Before("gorm:update").Register("vendorscope:before_update", vc.beforeUpdate)
	_ = db.Callback().Delete().Before("gorm:delete").Register("vendorscope:before_delete", vc.beforeDelete)
	_ = db.Callback().Row().Before("gorm:row").Register("vendorscope:before_row", vc.beforeQuery)

	// Create is not hooked: repositories stamp vendor_id explicitly when
	// creating owned entities
}

func (vc *VendorCallback) beforeQuery(db *gorm.DB) {
	vc.addVendorFilter(db)
}

func (vc *VendorCallback) beforeUpdate(db *gorm.DB) {
	vc.addVendorFilter(db)
}

func (vc *VendorCallback) beforeDelete(db *gorm.DB) {
	vc.addVendorFilter(db)
}

// addVendorFilter adds vendor filtering to the query
func (vc *VendorCallback) addVendorFilter(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}

	// Skip if unscoped
	if db.Statement.Unscoped {
		return
	}

	// Only owned tables carry a vendor_id column
	if !vc.ownedTables[db.Statement.Table] {
		return
	}

	// Skip if already has vendor condition
	if vc.hasVendorCondition(db) {
		return
	}

	// An owned table with no vendor anywhere is refused outright rather
	// than run unfiltered
	vendorID, err := FromContext(db.Statement.Context)
	if err != nil {
		_ = db.AddError(err)
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: vc.vendorColumn},
				Value:  vendorID.String(),
			},
		},
	})
}

// hasVendorCondition checks if a vendor_id condition is already present
func (vc *VendorCallback) hasVendorCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if vc.exprContainsVendor(expr) {
					return true
				}
			}
		}
	}

	// Also check the built SQL if available
	sql := db.Statement.SQL.String()
	if sql != "" && strings.Contains(sql, vc.vendorColumn) {
		return true
	}

	return false
}

func (vc *VendorCallback) exprContainsVendor(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == vc.vendorColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == vc.vendorColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if vc.exprContainsVendor(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if vc.exprContainsVendor(cond) {
				return true
			}
		}
	case clause.Expr:
		if strings.Contains(e.SQL, vc.vendorColumn) {
			return true
		}
	}
	return false
}

// RegisterCallbacks installs vendor scoping callbacks guarding the given
// owned tables on the DB instance
func RegisterCallbacks(db *gorm.DB, ownedTables ...string) {
	NewVendorCallback(ownedTables...).RegisterCallbacks(db)
}

// RemoveCallbacks removes the vendor callbacks, mainly for tests
func RemoveCallbacks(db *gorm.DB) {
	_ = db.Callback().Query().Remove("vendorscope:before_query")
	_ = db.Callback().Update().Remove("vendorscope:before_update")
	_ = db.Callback().Delete().Remove("vendorscope:before_delete")
	_ = db.Callback().Row().Remove("vendorscope:before_row")
}

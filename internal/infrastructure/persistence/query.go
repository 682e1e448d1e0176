package persistence

import (
	"github.com/shcya/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// listQuery applies the equality filters named in filterColumns, the
// search columns, then paging and a whitelisted ordering.
type listQuery struct {
	sortFields    map[string]bool
	filterColumns map[string]string
	searchColumns []string
}

func (q listQuery) where(db *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		column, ok := q.filterColumns[key]
		if !ok || value == nil || value == "" {
			continue
		}
		db = db.Where(column+" = ?", value)
	}
	if filter.Search != "" && len(q.searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		cond := ""
		args := make([]any, 0, len(q.searchColumns))
		for i, col := range q.searchColumns {
			if i > 0 {
				cond += " OR "
			}
			cond += "LOWER(" + col + ") LIKE LOWER(?)"
			args = append(args, pattern)
		}
		db = db.Where(cond, args...)
	}
	return db
}

func (q listQuery) apply(db *gorm.DB, filter shared.Filter) *gorm.DB {
	filter = filter.Normalize()
	db = q.where(db, filter)

	orderBy := ValidateSortField(filter.OrderBy, q.sortFields, "created_at")
	db = db.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return db.Offset(filter.Offset()).Limit(filter.PageSize)
}

// saveVersioned inserts a first-version aggregate or updates an existing
// one only when the stored version is the one it was loaded with.
func saveVersioned(db *gorm.DB, model any, id any, version int) error {
	if version <= 1 {
		return db.Create(model).Error
	}
	result := db.Model(model).
		Where("id = ? AND version = ?", id, version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/service-task-manager/internal/utils"
)

// Paginate limits a query to one page. A zero limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// WhereIDIf filters on column = *id when id is set
func WhereIDIf(column string, id *uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where(column+" = ?", *id)
	}
}

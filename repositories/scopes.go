package repositories

import (
	"HospitalAdmin/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// ilikeAny matches term case-insensitively as a substring of any column.
// An empty term matches everything.
func ilikeAny(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := likePattern(term)
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, column := range columns {
			conds[i] = column + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// eq adds an exact match unless value is empty.
func eq(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// eqID is eq for uuid columns. A malformed id matches nothing.
func eqID(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		if !validID(value) {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", value)
	}
}

// dayRange keeps rows whose column falls on or between the given days.
// Bounds that are empty or not a date are ignored.
func dayRange(column, start, end string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from, err := time.Parse(models.DateLayout, start); err == nil {
			db = db.Where(column+" >= ?", from)
		}
		if to, err := time.Parse(models.DateLayout, end); err == nil {
			db = db.Where(column+" <= ?", to.Add(24*time.Hour-time.Nanosecond))
		}
		return db
	}
}

package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error 1146: table doesn't exist.
const mysqlErrNoSuchTable = 1146

// IsMissingTable reports whether err comes from querying a table that is not
// part of the current schema.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrNoSuchTable
	}
	return strings.Contains(err.Error(), "doesn't exist")
}

// countOrZero runs a COUNT query and treats a missing table as zero rows.
func countOrZero(q *gorm.DB) (int64, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		if IsMissingTable(err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s as a literal substring. MySQL's default LIKE escape
// character is the backslash.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

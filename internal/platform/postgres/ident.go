// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// QuoteTable quotes a possibly schema-qualified table name ("content.post").
func QuoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// QuoteColumn quotes a single column name.
func QuoteColumn(column string) string {
	return pgx.Identifier{column}.Sanitize()
}

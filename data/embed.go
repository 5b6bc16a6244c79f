// Package data embeds the SQL used to bootstrap database roles outside of
// gorm migrations.
package data

import (
	_ "embed"
	"strings"
)

//go:embed initdb/postgres/001-privileges.sql
var InitdbPostgresPrivileges string

// PostgresPrivileges renders the privileges script for the given database,
// schema owner and application role.
func PostgresPrivileges(database, owner, app string) string {
	return strings.NewReplacer(
		":db", quoteIdent(database),
		":owner", quoteIdent(owner),
		":app", quoteIdent(app),
	).Replace(InitdbPostgresPrivileges)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Package migrations contiene el esquema versionado de la base de datos.
package migrations

import "embed"

// FS expone los archivos .sql para golang-migrate (fuente iofs).
//
//go:embed *.sql
var FS embed.FS

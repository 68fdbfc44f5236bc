package postgres

import "github.com/Masterminds/squirrel"

// Psql is the statement builder shared by all repositories.
var Psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

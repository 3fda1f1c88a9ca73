package database

import "github.com/Masterminds/squirrel"

// Builder renvoie un constructeur de requêtes avec les placeholders PostgreSQL
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

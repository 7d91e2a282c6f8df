package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies every schema file in lexical order. Statements are idempotent.
func Migrate(ctx context.Context, dbtx DBTX) error {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("schemaFS.ReadFile[%s]: %w", name, err)
		}

		for _, stmt := range splitStatements(string(content)) {
			if _, err := dbtx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("dbtx.Exec[%s]: %w", name, err)
			}
		}
	}

	return nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

//go:embed sql/pre_automigrate.sql
var preAutoMigrateSQL string

//go:embed sql/post_automigrate.sql
var postAutoMigrateSQL string

type migrationStep struct {
	name string
	run  func(tx *gorm.DB) error
}

// autoMigrate creates the schemas, lets gorm reconcile the model tables and
// then applies the partial indexes and checks gorm tags cannot express.
func (p *Pool) autoMigrate(ctx context.Context) error {
	gdb, err := p.session(ctx)
	if err != nil {
		return err
	}

	steps := []migrationStep{
		{name: "create schemas", run: rawSQL(preAutoMigrateSQL)},
		{name: "gorm auto-migrate models", run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(autoMigrateModels()...)
		}},
		{name: "indexes and constraints", run: rawSQL(postAutoMigrateSQL)},
	}

	for _, step := range steps {
		if err := step.run(gdb); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func rawSQL(sqlText string) func(tx *gorm.DB) error {
	trimmed := strings.TrimSpace(sqlText)
	return func(tx *gorm.DB) error {
		if trimmed == "" {
			return nil
		}
		return tx.Exec(trimmed).Error
	}
}

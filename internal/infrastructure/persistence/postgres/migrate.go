package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"seo-flow-api/internal/domain/entity"
)

// Models 返回需要迁移的全部模型
func Models() []any {
	return []any{
		&entity.Project{},
		&entity.Audit{},
		&entity.ContentBrief{},
		&entity.SerpSimulation{},
		&entity.OutreachProspect{},
		&entity.LLMUsageEvent{},
	}
}

// projectScopedTables 需要同时校验项目归属的表
var projectScopedTables = []string{"audits", "content_briefs", "serp_simulations", "outreach_prospects"}

// Migrate 自动迁移表结构，PostgreSQL 下同时安装行级安全策略
func (c *Client) Migrate(ctx context.Context) error {
	db := c.db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range rowLevelSecurityStatements() {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to apply row level security: %w", err)
			}
		}
		return nil
	})
}

func rowLevelSecurityStatements() []string {
	const owner = "user_id::text = current_setting('app.current_user_id', TRUE)"

	stmts := ownerPolicy("projects", owner, owner)
	for _, table := range projectScopedTables {
		check := owner + " AND EXISTS (SELECT 1 FROM projects p WHERE p.id = project_id AND p.user_id::text = current_setting('app.current_user_id', TRUE))"
		stmts = append(stmts, ownerPolicy(table, owner, check)...)
	}
	return stmts
}

func ownerPolicy(table, using, check string) []string {
	return []string{
		fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table),
		fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table),
		fmt.Sprintf("DROP POLICY IF EXISTS %s_owner ON %s", table, table),
		fmt.Sprintf("CREATE POLICY %s_owner ON %s USING (%s) WITH CHECK (%s)", table, table, using, check),
	}
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tgcatalog/models"
)

// SyncOptions — параметры синхронизации автоподборок.
type SyncOptions struct {
	OwnerID    int64
	StartOrder int  // порядок первой созданной подборки, используется как есть
	OrderStep  int  // шаг порядка между созданными подборками, 0 даёт всем один порядок
	DryRun     bool // выполнить всё и откатить транзакцию
}

// SyncResult — итог синхронизации.
type SyncResult struct {
	Categories    int
	CreatedGroups int
	CreatedRules  int
	UpdatedRules  int
}

// OwnerRef указывает владельца подборок. Если ничего не задано,
// берётся первый суперпользователь, а без него первый пользователь.
type OwnerRef struct {
	ID       int64
	Username string
	Email    string
}

// NormalizeCategories обрезает пробелы, убирает пустые значения и повторы,
// сохраняя порядок первого появления.
func NormalizeCategories(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// DistinctChannelCategories возвращает категории, которые реально встречаются у каналов.
func (db *DB) DistinctChannelCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Conn.QueryContext(ctx, `
		SELECT category
		FROM telegram_channels
		WHERE category <> ''
		GROUP BY category
		ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var c sql.NullString
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		if c.Valid {
			raw = append(raw, c.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NormalizeCategories(raw), nil
}

// ResolveOwner находит владельца подборок.
func (db *DB) ResolveOwner(ctx context.Context, ref OwnerRef) (*models.User, error) {
	var (
		where string
		arg   any
		desc  string
	)
	switch {
	case ref.ID != 0:
		where, arg, desc = "u.id = $1", ref.ID, fmt.Sprintf("id=%d", ref.ID)
	case ref.Username != "":
		where, arg, desc = "u.username = $1", ref.Username, fmt.Sprintf("username='%s'", ref.Username)
	case ref.Email != "":
		where, arg, desc = "u.email = $1", ref.Email, fmt.Sprintf("email='%s'", ref.Email)
	}

	if where != "" {
		u, err := scanUser(db.Conn.QueryRowContext(ctx, `
			SELECT `+userColumns+`
			FROM users u
			LEFT JOIN partner_profiles p ON p.user_id = u.id
			WHERE `+where, arg))
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("пользователь с %s не найден: %w", desc, ErrNotFound)
		}
		return u, err
	}

	u, err := scanUser(db.Conn.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN partner_profiles p ON p.user_id = u.id
		ORDER BY u.is_superuser DESC, u.id
		LIMIT 1
	`))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("не удалось определить владельца (нет пользователей): %w", ErrNotFound)
	}
	return u, err
}

// SyncCategoryGroups создаёт автоподборку и правило для каждой категории в одной транзакции.
// Существующие подборки не меняются, правило с другой категорией исправляется.
func (db *DB) SyncCategoryGroups(ctx context.Context, categories []string, opts SyncOptions) (SyncResult, error) {
	categories = NormalizeCategories(categories)
	result := SyncResult{Categories: len(categories)}

	tx, err := db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer func() { _ = tx.Rollback() }()

	order := opts.StartOrder
	for _, cat := range categories {
		var groupID int
		err := tx.QueryRowContext(ctx, `SELECT id FROM channel_groups WHERE name = $1`, cat).Scan(&groupID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO channel_groups (name, is_editorial, sort_order, owner_id)
				VALUES ($1, FALSE, $2, $3)
				RETURNING id
			`, cat, order, opts.OwnerID).Scan(&groupID); err != nil {
				return result, fmt.Errorf("не удалось создать подборку %q: %w", cat, err)
			}
			result.CreatedGroups++
			order += opts.OrderStep
		case err != nil:
			return result, err
		}

		var rule models.AutoGroupRule
		err = tx.QueryRowContext(ctx, `SELECT id, category FROM auto_group_rules WHERE group_id = $1`, groupID).Scan(&rule.ID, &rule.Category)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx, `INSERT INTO auto_group_rules (group_id, category) VALUES ($1, $2)`, groupID, cat); err != nil {
				return result, fmt.Errorf("не удалось создать правило для %q: %w", cat, err)
			}
			result.CreatedRules++
		case err != nil:
			return result, err
		case rule.Category != cat:
			if _, err := tx.ExecContext(ctx, `UPDATE auto_group_rules SET category = $1 WHERE id = $2`, cat, rule.ID); err != nil {
				return result, err
			}
			result.UpdatedRules++
		}
	}

	if opts.DryRun {
		return result, nil
	}
	if err := tx.Commit(); err != nil {
		return result, err
	}
	return result, nil
}

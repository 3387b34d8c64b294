package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"tgcatalog/models"
)

const userColumns = `
	u.id, u.username, u.first_name, COALESCE(u.email, ''), u.company, u.role,
	COALESCE(u.avatar_image, ''), u.bio, u.is_superuser, COALESCE(p.status, '')
`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.Email, &u.Company, &u.Role,
		&u.AvatarImage, &u.Bio, &u.IsSuperuser, &u.PartnerStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername возвращает пользователя вместе со статусом партнёрского профиля.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.Conn.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN partner_profiles p ON p.user_id = u.id
		WHERE u.username = $1
	`, username)
	return scanUser(row)
}

// UpdateUserProfile сохраняет имя, email и компанию пользователя.
// Занятый email возвращается как ErrEmailTaken.
func (db *DB) UpdateUserProfile(ctx context.Context, username, firstName, email, company string) (*models.User, error) {
	res, err := db.Conn.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, email = $2, company = $3
		WHERE username = $4
	`, firstName, email, company, username)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return db.GetUserByUsername(ctx, username)
}

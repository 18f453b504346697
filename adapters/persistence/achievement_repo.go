package persistence

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresAchievementRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAchievementRepo(db *pgxpool.Pool, logger logger.Logger) achievement.Repository {
	return &postgresAchievementRepo{db: db, logger: logger}
}

var psqlAchievement = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const achievementColumns = "id, profile_id, title, description, date_achieved, organization, created_at, updated_at"

func scanAchievement(row pgx.Row) (*achievement.Achievement, error) {
	a := &achievement.Achievement{}
	var dateAchieved *time.Time
	err := row.Scan(
		&a.ID, &a.ProfileID, &a.Title, &a.Description, &dateAchieved,
		&a.Organization, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "achievement")
	}
	a.DateAchieved = nullableDate(dateAchieved)
	return a, nil
}

func (r *postgresAchievementRepo) Save(ctx context.Context, a *achievement.Achievement) error {
	query := `
		INSERT INTO achievements (id, profile_id, title, description, date_achieved, organization, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.ProfileID, a.Title, a.Description, nullableDateValue(a.DateAchieved),
		a.Organization, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save achievement")
	}
	return nil
}

func (r *postgresAchievementRepo) Update(ctx context.Context, a *achievement.Achievement) error {
	query := `
		UPDATE achievements SET
			profile_id = $2, title = $3, description = $4, date_achieved = $5,
			organization = $6, updated_at = $7
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "achievement", a.ID.String(), query,
		a.ID, a.ProfileID, a.Title, a.Description, nullableDateValue(a.DateAchieved),
		a.Organization, a.UpdatedAt,
	)
}

func (r *postgresAchievementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "achievement", id.String(), `DELETE FROM achievements WHERE id = $1`, id)
}

func (r *postgresAchievementRepo) FindByID(ctx context.Context, id uuid.UUID) (*achievement.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1`
	return findOne(ctx, r.db, query, "achievement", id.String(), scanAchievement, id)
}

func (r *postgresAchievementRepo) List(ctx context.Context, filter achievement.Filter) ([]*achievement.Achievement, error) {
	builder := psqlAchievement.Select(achievementColumns).
		From("achievements").
		OrderBy("date_achieved DESC", "created_at ASC")
	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	rows, err := queryRows(ctx, r.db, builder, "achievements")
	if err != nil {
		return nil, err
	}
	return collect(rows, "achievement", scanAchievement)
}

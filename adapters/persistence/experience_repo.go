package persistence

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresExperienceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresExperienceRepo(db *pgxpool.Pool, logger logger.Logger) experience.Repository {
	return &postgresExperienceRepo{db: db, logger: logger}
}

var psqlExperience = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const experienceColumns = "id, profile_id, company, role, description, start_date, end_date, is_current, location, created_at, updated_at"

func scanExperience(row pgx.Row) (*experience.WorkExperience, error) {
	w := &experience.WorkExperience{}
	var (
		startDate time.Time
		endDate   *time.Time
	)
	err := row.Scan(
		&w.ID, &w.ProfileID, &w.Company, &w.Role, &w.Description,
		&startDate, &endDate, &w.IsCurrent, &w.Location, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "work experience")
	}
	w.StartDate = civil.DateOf(startDate)
	w.EndDate = nullableDate(endDate)
	return w, nil
}

func (r *postgresExperienceRepo) Save(ctx context.Context, w *experience.WorkExperience) error {
	query := `
		INSERT INTO work_experience (id, profile_id, company, role, description, start_date, end_date, is_current, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		w.ID, w.ProfileID, w.Company, w.Role, w.Description,
		dateValue(w.StartDate), nullableDateValue(w.EndDate), w.IsCurrent, w.Location,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save work experience")
	}
	return nil
}

func (r *postgresExperienceRepo) Update(ctx context.Context, w *experience.WorkExperience) error {
	query := `
		UPDATE work_experience SET
			profile_id = $2, company = $3, role = $4, description = $5, start_date = $6,
			end_date = $7, is_current = $8, location = $9, updated_at = $10
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "work experience", w.ID.String(), query,
		w.ID, w.ProfileID, w.Company, w.Role, w.Description,
		dateValue(w.StartDate), nullableDateValue(w.EndDate), w.IsCurrent, w.Location, w.UpdatedAt,
	)
}

func (r *postgresExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "work experience", id.String(), `DELETE FROM work_experience WHERE id = $1`, id)
}

func (r *postgresExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*experience.WorkExperience, error) {
	query := `SELECT ` + experienceColumns + ` FROM work_experience WHERE id = $1`
	return findOne(ctx, r.db, query, "work experience", id.String(), scanExperience, id)
}

func (r *postgresExperienceRepo) List(ctx context.Context, filter experience.Filter) ([]*experience.WorkExperience, error) {
	builder := psqlExperience.Select(experienceColumns).
		From("work_experience").
		OrderBy("start_date DESC", "created_at ASC")
	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	rows, err := queryRows(ctx, r.db, builder, "work experience")
	if err != nil {
		return nil, err
	}
	return collect(rows, "work experience", scanExperience)
}

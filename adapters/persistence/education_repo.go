package persistence

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresEducationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresEducationRepo(db *pgxpool.Pool, logger logger.Logger) education.Repository {
	return &postgresEducationRepo{db: db, logger: logger}
}

var psqlEducation = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const educationColumns = "id, profile_id, institution, degree, field_of_study, start_date, end_date, cgpa, is_current, created_at, updated_at"

func scanEducation(row pgx.Row) (*education.Education, error) {
	e := &education.Education{}
	var (
		startDate time.Time
		endDate   *time.Time
	)
	err := row.Scan(
		&e.ID, &e.ProfileID, &e.Institution, &e.Degree, &e.FieldOfStudy,
		&startDate, &endDate, &e.CGPA, &e.IsCurrent, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "education")
	}
	e.StartDate = civil.DateOf(startDate)
	e.EndDate = nullableDate(endDate)
	return e, nil
}

func (r *postgresEducationRepo) Save(ctx context.Context, e *education.Education) error {
	query := `
		INSERT INTO education (id, profile_id, institution, degree, field_of_study, start_date, end_date, cgpa, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.ProfileID, e.Institution, e.Degree, e.FieldOfStudy,
		dateValue(e.StartDate), nullableDateValue(e.EndDate), e.CGPA, e.IsCurrent,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save education")
	}
	return nil
}

func (r *postgresEducationRepo) Update(ctx context.Context, e *education.Education) error {
	query := `
		UPDATE education SET
			profile_id = $2, institution = $3, degree = $4, field_of_study = $5,
			start_date = $6, end_date = $7, cgpa = $8, is_current = $9, updated_at = $10
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "education", e.ID.String(), query,
		e.ID, e.ProfileID, e.Institution, e.Degree, e.FieldOfStudy,
		dateValue(e.StartDate), nullableDateValue(e.EndDate), e.CGPA, e.IsCurrent, e.UpdatedAt,
	)
}

func (r *postgresEducationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "education", id.String(), `DELETE FROM education WHERE id = $1`, id)
}

func (r *postgresEducationRepo) FindByID(ctx context.Context, id uuid.UUID) (*education.Education, error) {
	query := `SELECT ` + educationColumns + ` FROM education WHERE id = $1`
	return findOne(ctx, r.db, query, "education", id.String(), scanEducation, id)
}

func (r *postgresEducationRepo) List(ctx context.Context, filter education.Filter) ([]*education.Education, error) {
	builder := psqlEducation.Select(educationColumns).
		From("education").
		OrderBy("start_date DESC", "created_at ASC")
	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	rows, err := queryRows(ctx, r.db, builder, "education")
	if err != nil {
		return nil, err
	}
	return collect(rows, "education", scanEducation)
}

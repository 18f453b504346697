package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = "id, name, email, phone, linkedin, github, summary, cgpa, created_at, updated_at"

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.LinkedIn, &p.GitHub,
		&p.Summary, &p.CGPA, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "profile")
	}
	return p, nil
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, name, email, phone, linkedin, github, summary, cgpa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.LinkedIn, p.GitHub,
		p.Summary, p.CGPA, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save profile")
	}
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			name = $2, email = $3, phone = $4, linkedin = $5, github = $6,
			summary = $7, cgpa = $8, updated_at = $9
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "profile", p.ID.String(), query,
		p.ID, p.Name, p.Email, p.Phone, p.LinkedIn, p.GitHub,
		p.Summary, p.CGPA, p.UpdatedAt,
	)
}

func (r *postgresProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "profile", id.String(), `DELETE FROM profiles WHERE id = $1`, id)
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return findOne(ctx, r.db, query, "profile", id.String(), scanProfile, id)
}

func (r *postgresProfileRepo) FindOldest(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC, id ASC LIMIT 1`
	p, err := scanProfile(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAppError(apperror.ErrNotFound, "No profile found", "no profile has been created yet", nil)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	builder := psqlProfile.Select(profileColumns).
		From("profiles").
		OrderBy("created_at ASC", "id ASC")
	rows, err := queryRows(ctx, r.db, builder, "profiles")
	if err != nil {
		return nil, err
	}
	return collect(rows, "profile", scanProfile)
}

package persistence

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresCertificationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCertificationRepo(db *pgxpool.Pool, logger logger.Logger) certification.Repository {
	return &postgresCertificationRepo{db: db, logger: logger}
}

var psqlCertification = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const certificationColumns = "id, profile_id, name, issuer, issue_date, expiry_date, credential_url, created_at, updated_at"

func scanCertification(row pgx.Row) (*certification.Certification, error) {
	c := &certification.Certification{}
	var (
		issueDate  *time.Time
		expiryDate *time.Time
	)
	err := row.Scan(
		&c.ID, &c.ProfileID, &c.Name, &c.Issuer, &issueDate, &expiryDate,
		&c.CredentialURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "certification")
	}
	c.IssueDate = nullableDate(issueDate)
	c.ExpiryDate = nullableDate(expiryDate)
	return c, nil
}

func (r *postgresCertificationRepo) Save(ctx context.Context, c *certification.Certification) error {
	query := `
		INSERT INTO certifications (id, profile_id, name, issuer, issue_date, expiry_date, credential_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.ProfileID, c.Name, c.Issuer, nullableDateValue(c.IssueDate),
		nullableDateValue(c.ExpiryDate), c.CredentialURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save certification")
	}
	return nil
}

func (r *postgresCertificationRepo) Update(ctx context.Context, c *certification.Certification) error {
	query := `
		UPDATE certifications SET
			profile_id = $2, name = $3, issuer = $4, issue_date = $5,
			expiry_date = $6, credential_url = $7, updated_at = $8
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "certification", c.ID.String(), query,
		c.ID, c.ProfileID, c.Name, c.Issuer, nullableDateValue(c.IssueDate),
		nullableDateValue(c.ExpiryDate), c.CredentialURL, c.UpdatedAt,
	)
}

func (r *postgresCertificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "certification", id.String(), `DELETE FROM certifications WHERE id = $1`, id)
}

func (r *postgresCertificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE id = $1`
	return findOne(ctx, r.db, query, "certification", id.String(), scanCertification, id)
}

func (r *postgresCertificationRepo) List(ctx context.Context, filter certification.Filter) ([]*certification.Certification, error) {
	builder := psqlCertification.Select(certificationColumns).
		From("certifications").
		OrderBy("issue_date DESC", "created_at ASC")
	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	rows, err := queryRows(ctx, r.db, builder, "certifications")
	if err != nil {
		return nil, err
	}
	return collect(rows, "certification", scanCertification)
}

package persistence

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cloud.google.com/go/civil"

	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const projectColumns = "id, profile_id, title, description, technologies, start_date, end_date, status, github_link, demo_link, achievements, created_at, updated_at"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	var (
		techs     []string
		startDate time.Time
		endDate   *time.Time
	)
	err := row.Scan(
		&p.ID, &p.ProfileID, &p.Title, &p.Description, &techs,
		&startDate, &endDate, &p.Status, &p.GithubLink, &p.DemoLink,
		&p.Achievements, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, scanError(err, "project")
	}
	if techs == nil {
		techs = []string{}
	}
	p.Technologies = project.Technologies(techs)
	p.StartDate = civil.DateOf(startDate)
	p.EndDate = nullableDate(endDate)
	return p, nil
}

func technologiesValue(t project.Technologies) []string {
	if t == nil {
		return []string{}
	}
	return []string(t)
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (id, profile_id, title, description, technologies, start_date, end_date, status, github_link, demo_link, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.ProfileID, p.Title, p.Description, technologiesValue(p.Technologies),
		dateValue(p.StartDate), nullableDateValue(p.EndDate), p.Status,
		p.GithubLink, p.DemoLink, p.Achievements, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to save project")
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects SET
			profile_id = $2, title = $3, description = $4, technologies = $5, start_date = $6,
			end_date = $7, status = $8, github_link = $9, demo_link = $10, achievements = $11,
			updated_at = $12
		WHERE id = $1
	`
	return execAffectingOne(ctx, r.db, "project", p.ID.String(), query,
		p.ID, p.ProfileID, p.Title, p.Description, technologiesValue(p.Technologies),
		dateValue(p.StartDate), nullableDateValue(p.EndDate), p.Status,
		p.GithubLink, p.DemoLink, p.Achievements, p.UpdatedAt,
	)
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "project", id.String(), `DELETE FROM projects WHERE id = $1`, id)
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return findOne(ctx, r.db, query, "project", id.String(), scanProject, id)
}

func (r *postgresProjectRepo) List(ctx context.Context, filter project.Filter) ([]*project.Project, error) {
	builder := psqlProject.Select(projectColumns).
		From("projects").
		OrderBy("start_date DESC", "created_at ASC")

	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	if filter.Technology != "" {
		pattern := "%" + likeEscaper.Replace(filter.Technology) + "%"
		builder = builder.Where(sq.Expr("EXISTS (SELECT 1 FROM unnest(technologies) AS tech WHERE tech ILIKE ?)", pattern))
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.FeaturedOnly {
		builder = builder.Where(sq.NotEq{"achievements": ""})
	}

	rows, err := queryRows(ctx, r.db, builder, "projects")
	if err != nil {
		return nil, err
	}
	return collect(rows, "project", scanProject)
}

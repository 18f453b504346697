package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var psqlSkill = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const skillColumns = "id, profile_id, name, category, proficiency, created_at, updated_at"

// ErrDuplicateSkillName is the message for a (profile, name) collision.
const ErrDuplicateSkillName = "skill with this profile and name already exists"

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	err := row.Scan(&s.ID, &s.ProfileID, &s.Name, &s.Category, &s.Proficiency, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, scanError(err, "skill")
	}
	return s, nil
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (id, profile_id, name, category, proficiency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.ProfileID, s.Name, s.Category, s.Proficiency, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperror.NewFieldError("name", ErrDuplicateSkillName)
		}
		return mapWriteError(err, "failed to save skill")
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `
		UPDATE skills SET
			profile_id = $2, name = $3, category = $4, proficiency = $5, updated_at = $6
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, s.ID, s.ProfileID, s.Name, s.Category, s.Proficiency, s.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperror.NewFieldError("name", ErrDuplicateSkillName)
		}
		return mapWriteError(err, "failed to update skill")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", s.ID.String())
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "skill", id.String(), `DELETE FROM skills WHERE id = $1`, id)
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`
	return findOne(ctx, r.db, query, "skill", id.String(), scanSkill, id)
}

func (r *postgresSkillRepo) List(ctx context.Context, filter skill.Filter) ([]*skill.Skill, error) {
	builder := psqlSkill.Select(skillColumns).
		From("skills").
		OrderBy(`category COLLATE "C" ASC`, `name COLLATE "C" ASC`, "created_at ASC")

	if filter.ProfileID != nil {
		builder = builder.Where(sq.Eq{"profile_id": *filter.ProfileID})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Proficiency != "" {
		builder = builder.Where(sq.Eq{"proficiency": filter.Proficiency})
	}
	if len(filter.Proficiencies) > 0 {
		levels := make([]string, len(filter.Proficiencies))
		for i, p := range filter.Proficiencies {
			levels[i] = string(p)
		}
		builder = builder.Where(sq.Eq{"proficiency": levels})
	}

	rows, err := queryRows(ctx, r.db, builder, "skills")
	if err != nil {
		return nil, err
	}
	return collect(rows, "skill", scanSkill)
}

func (r *postgresSkillRepo) ExistsByName(ctx context.Context, profileID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM skills WHERE profile_id = $1 AND name = $2 AND id <> $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, profileID, name, excludeID).Scan(&exists); err != nil {
		return false, apperror.NewInternal("failed to check skill name", err)
	}
	return exists, nil
}

package http

import (
	"bytes"
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
)

// orderedObject renders as a JSON object whose keys keep slice order.
type orderedObject []orderedEntry

type orderedEntry struct {
	Key   string
	Value any
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Profile DTOs

type ProfileRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Phone    string   `json:"phone" binding:"max=20"`
	LinkedIn string   `json:"linkedin" binding:"omitempty,url"`
	GitHub   string   `json:"github" binding:"omitempty,url"`
	Summary  string   `json:"summary" binding:"required"`
	CGPA     *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
}

func newProfileRequest(p *profile.Profile) ProfileRequest {
	return ProfileRequest{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		LinkedIn: p.LinkedIn,
		GitHub:   p.GitHub,
		Summary:  p.Summary,
		CGPA:     p.CGPA,
	}
}

func (r ProfileRequest) apply(p *profile.Profile) {
	p.Name = r.Name
	p.Email = r.Email
	p.Phone = r.Phone
	p.LinkedIn = r.LinkedIn
	p.GitHub = r.GitHub
	p.Summary = r.Summary
	p.CGPA = r.CGPA
}

type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LinkedIn  string    `json:"linkedin"`
	GitHub    string    `json:"github"`
	Summary   string    `json:"summary"`
	CGPA      *float64  `json:"cgpa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		LinkedIn:  p.LinkedIn,
		GitHub:    p.GitHub,
		Summary:   p.Summary,
		CGPA:      p.CGPA,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PortfolioDTO is a profile with its records nested.
type PortfolioDTO struct {
	ProfileDTO
	Education      []EducationDTO     `json:"education"`
	Skills         []SkillDTO         `json:"skills"`
	Projects       []ProjectDTO       `json:"projects"`
	WorkExperience []ExperienceDTO    `json:"work_experience"`
	Certifications []CertificationDTO `json:"certifications"`
	Achievements   []AchievementDTO   `json:"achievements"`
}

func ToPortfolioDTO(p *profileUC.Portfolio) PortfolioDTO {
	return PortfolioDTO{
		ProfileDTO:     ToProfileDTO(p.Profile),
		Education:      mapAll(p.Education, ToEducationDTO),
		Skills:         mapAll(p.Skills, ToSkillDTO),
		Projects:       mapAll(p.Projects, ToProjectDTO),
		WorkExperience: mapAll(p.Experience, ToExperienceDTO),
		Certifications: mapAll(p.Certifications, ToCertificationDTO),
		Achievements:   mapAll(p.Achievements, ToAchievementDTO),
	}
}

type ProfileSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Summary       string    `json:"summary"`
	TotalProjects int       `json:"total_projects"`
	TotalSkills   int       `json:"total_skills"`
	TopSkills     []string  `json:"top_skills"`
}

func ToProfileSummaryDTO(out *profileUC.SummaryOutput) ProfileSummaryDTO {
	return ProfileSummaryDTO{
		ID:            out.Profile.ID,
		Name:          out.Profile.Name,
		Email:         out.Profile.Email,
		Summary:       out.Profile.Summary,
		TotalProjects: out.TotalProjects,
		TotalSkills:   out.TotalSkills,
		TopSkills:     out.TopSkills,
	}
}

// Skill DTOs

type SkillRequest struct {
	Profile     uuid.UUID `json:"profile" binding:"required"`
	Name        string    `json:"name" binding:"required,max=100"`
	Category    string    `json:"category" binding:"required,oneof=programming data_ml data_engineering cloud ml_ai web_dev tools soft_skills"`
	Proficiency string    `json:"proficiency" binding:"required,oneof=beginner intermediate advanced expert"`
}

func defaultSkillRequest() SkillRequest {
	return SkillRequest{Proficiency: string(skill.ProficiencyIntermediate)}
}

func newSkillRequest(s *skill.Skill) SkillRequest {
	return SkillRequest{
		Profile:     s.ProfileID,
		Name:        s.Name,
		Category:    string(s.Category),
		Proficiency: string(s.Proficiency),
	}
}

func (r SkillRequest) apply(s *skill.Skill) {
	s.ProfileID = r.Profile
	s.Name = r.Name
	s.Category = skill.Category(r.Category)
	s.Proficiency = skill.Proficiency(r.Proficiency)
}

type SkillDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency string    `json:"proficiency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToSkillDTO(s *skill.Skill) SkillDTO {
	return SkillDTO{
		ID:          s.ID,
		Name:        s.Name,
		Category:    string(s.Category),
		Proficiency: string(s.Proficiency),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type categoryGroupDTO struct {
	Name   string     `json:"name"`
	Skills []SkillDTO `json:"skills"`
}

// ToCategoriesDTO renders groups as {category: {name, skills}} in declared order.
func ToCategoriesDTO(groups []analytics.CategoryGroup) orderedObject {
	out := make(orderedObject, 0, len(groups))
	for _, g := range groups {
		out = append(out, orderedEntry{Key: g.Key, Value: categoryGroupDTO{Name: g.Name, Skills: mapAll(g.Skills, ToSkillDTO)}})
	}
	return out
}

// Project DTOs

type ProjectRequest struct {
	Profile      uuid.UUID   `json:"profile" binding:"required"`
	Title        string      `json:"title" binding:"required,max=200"`
	Description  string      `json:"description" binding:"required"`
	Technologies []string    `json:"technologies" binding:"max=20,dive,required,max=50"`
	StartDate    *civil.Date `json:"start_date" binding:"required"`
	EndDate      *civil.Date `json:"end_date"`
	Status       string      `json:"status" binding:"required,oneof=completed ongoing paused"`
	GithubLink   string      `json:"github_link" binding:"omitempty,url"`
	DemoLink     string      `json:"demo_link" binding:"omitempty,url"`
	Achievements string      `json:"achievements"`
}

func defaultProjectRequest() ProjectRequest {
	return ProjectRequest{Status: string(project.StatusCompleted)}
}

func newProjectRequest(p *project.Project) ProjectRequest {
	start := p.StartDate
	return ProjectRequest{
		Profile:      p.ProfileID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: append([]string(nil), p.Technologies...),
		StartDate:    &start,
		EndDate:      p.EndDate,
		Status:       string(p.Status),
		GithubLink:   p.GithubLink,
		DemoLink:     p.DemoLink,
		Achievements: p.Achievements,
	}
}

func (r ProjectRequest) apply(p *project.Project) {
	p.ProfileID = r.Profile
	p.Title = r.Title
	p.Description = r.Description
	p.Technologies = project.Technologies(r.Technologies)
	if p.Technologies == nil {
		p.Technologies = project.Technologies{}
	}
	p.StartDate = derefDate(r.StartDate)
	p.EndDate = r.EndDate
	p.Status = project.Status(r.Status)
	p.GithubLink = r.GithubLink
	p.DemoLink = r.DemoLink
	p.Achievements = r.Achievements
}

type ProjectDTO struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Technologies []string    `json:"technologies"`
	StartDate    civil.Date  `json:"start_date"`
	EndDate      *civil.Date `json:"end_date"`
	Status       string      `json:"status"`
	GithubLink   string      `json:"github_link"`
	DemoLink     string      `json:"demo_link"`
	Achievements string      `json:"achievements"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToProjectDTO(p *project.Project) ProjectDTO {
	techs := []string(p.Technologies)
	if techs == nil {
		techs = []string{}
	}
	return ProjectDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: techs,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       string(p.Status),
		GithubLink:   p.GithubLink,
		DemoLink:     p.DemoLink,
		Achievements: p.Achievements,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// Education DTOs

type EducationRequest struct {
	Profile      uuid.UUID   `json:"profile" binding:"required"`
	Institution  string      `json:"institution" binding:"required,max=200"`
	Degree       string      `json:"degree" binding:"required,max=200"`
	FieldOfStudy string      `json:"field_of_study" binding:"required,max=200"`
	StartDate    *civil.Date `json:"start_date" binding:"required"`
	EndDate      *civil.Date `json:"end_date"`
	CGPA         *float64    `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	IsCurrent    bool        `json:"is_current"`
}

func newEducationRequest(e *education.Education) EducationRequest {
	start := e.StartDate
	return EducationRequest{
		Profile:      e.ProfileID,
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    &start,
		EndDate:      e.EndDate,
		CGPA:         e.CGPA,
		IsCurrent:    e.IsCurrent,
	}
}

func (r EducationRequest) apply(e *education.Education) {
	e.ProfileID = r.Profile
	e.Institution = r.Institution
	e.Degree = r.Degree
	e.FieldOfStudy = r.FieldOfStudy
	e.StartDate = derefDate(r.StartDate)
	e.EndDate = r.EndDate
	e.CGPA = r.CGPA
	e.IsCurrent = r.IsCurrent
}

type EducationDTO struct {
	ID           uuid.UUID   `json:"id"`
	Institution  string      `json:"institution"`
	Degree       string      `json:"degree"`
	FieldOfStudy string      `json:"field_of_study"`
	StartDate    civil.Date  `json:"start_date"`
	EndDate      *civil.Date `json:"end_date"`
	CGPA         *float64    `json:"cgpa"`
	IsCurrent    bool        `json:"is_current"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToEducationDTO(e *education.Education) EducationDTO {
	return EducationDTO{
		ID:           e.ID,
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		CGPA:         e.CGPA,
		IsCurrent:    e.IsCurrent,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// Work experience DTOs

type ExperienceRequest struct {
	Profile     uuid.UUID   `json:"profile" binding:"required"`
	Company     string      `json:"company" binding:"required,max=200"`
	Role        string      `json:"role" binding:"required,max=200"`
	Description string      `json:"description"`
	StartDate   *civil.Date `json:"start_date" binding:"required"`
	EndDate     *civil.Date `json:"end_date"`
	IsCurrent   bool        `json:"is_current"`
	Location    string      `json:"location" binding:"max=100"`
}

func newExperienceRequest(w *experience.WorkExperience) ExperienceRequest {
	start := w.StartDate
	return ExperienceRequest{
		Profile:     w.ProfileID,
		Company:     w.Company,
		Role:        w.Role,
		Description: w.Description,
		StartDate:   &start,
		EndDate:     w.EndDate,
		IsCurrent:   w.IsCurrent,
		Location:    w.Location,
	}
}

func (r ExperienceRequest) apply(w *experience.WorkExperience) {
	w.ProfileID = r.Profile
	w.Company = r.Company
	w.Role = r.Role
	w.Description = r.Description
	w.StartDate = derefDate(r.StartDate)
	w.EndDate = r.EndDate
	w.IsCurrent = r.IsCurrent
	w.Location = r.Location
}

type ExperienceDTO struct {
	ID          uuid.UUID   `json:"id"`
	Company     string      `json:"company"`
	Role        string      `json:"role"`
	Description string      `json:"description"`
	StartDate   civil.Date  `json:"start_date"`
	EndDate     *civil.Date `json:"end_date"`
	IsCurrent   bool        `json:"is_current"`
	Location    string      `json:"location"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ToExperienceDTO(w *experience.WorkExperience) ExperienceDTO {
	return ExperienceDTO{
		ID:          w.ID,
		Company:     w.Company,
		Role:        w.Role,
		Description: w.Description,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		IsCurrent:   w.IsCurrent,
		Location:    w.Location,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// Certification DTOs

type CertificationRequest struct {
	Profile       uuid.UUID   `json:"profile" binding:"required"`
	Name          string      `json:"name" binding:"required,max=200"`
	Issuer        string      `json:"issuer" binding:"required,max=200"`
	IssueDate     *civil.Date `json:"issue_date"`
	ExpiryDate    *civil.Date `json:"expiry_date"`
	CredentialURL string      `json:"credential_url" binding:"omitempty,url"`
}

func newCertificationRequest(c *certification.Certification) CertificationRequest {
	return CertificationRequest{
		Profile:       c.ProfileID,
		Name:          c.Name,
		Issuer:        c.Issuer,
		IssueDate:     c.IssueDate,
		ExpiryDate:    c.ExpiryDate,
		CredentialURL: c.CredentialURL,
	}
}

func (r CertificationRequest) apply(c *certification.Certification) {
	c.ProfileID = r.Profile
	c.Name = r.Name
	c.Issuer = r.Issuer
	c.IssueDate = r.IssueDate
	c.ExpiryDate = r.ExpiryDate
	c.CredentialURL = r.CredentialURL
}

type CertificationDTO struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Issuer        string      `json:"issuer"`
	IssueDate     *civil.Date `json:"issue_date"`
	ExpiryDate    *civil.Date `json:"expiry_date"`
	CredentialURL string      `json:"credential_url"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func ToCertificationDTO(c *certification.Certification) CertificationDTO {
	return CertificationDTO{
		ID:            c.ID,
		Name:          c.Name,
		Issuer:        c.Issuer,
		IssueDate:     c.IssueDate,
		ExpiryDate:    c.ExpiryDate,
		CredentialURL: c.CredentialURL,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// Achievement DTOs

type AchievementRequest struct {
	Profile      uuid.UUID   `json:"profile" binding:"required"`
	Title        string      `json:"title" binding:"required,max=200"`
	Description  string      `json:"description" binding:"required"`
	DateAchieved *civil.Date `json:"date_achieved"`
	Organization string      `json:"organization" binding:"max=200"`
}

func newAchievementRequest(a *achievement.Achievement) AchievementRequest {
	return AchievementRequest{
		Profile:      a.ProfileID,
		Title:        a.Title,
		Description:  a.Description,
		DateAchieved: a.DateAchieved,
		Organization: a.Organization,
	}
}

func (r AchievementRequest) apply(a *achievement.Achievement) {
	a.ProfileID = r.Profile
	a.Title = r.Title
	a.Description = r.Description
	a.DateAchieved = r.DateAchieved
	a.Organization = r.Organization
}

type AchievementDTO struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DateAchieved *civil.Date `json:"date_achieved"`
	Organization string      `json:"organization"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToAchievementDTO(a *achievement.Achievement) AchievementDTO {
	return AchievementDTO{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		DateAchieved: a.DateAchieved,
		Organization: a.Organization,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Aggregate DTOs

type histogramEntryDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToHistogramDTO renders buckets as {key: {name, count}} in declared order.
func ToHistogramDTO(buckets []analytics.Bucket) orderedObject {
	out := make(orderedObject, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, orderedEntry{Key: b.Key, Value: histogramEntryDTO{Name: b.Name, Count: b.Count}})
	}
	return out
}

type SearchResultsDTO struct {
	Skills         []SkillDTO      `json:"skills"`
	Projects       []ProjectDTO    `json:"projects"`
	Education      []EducationDTO  `json:"education"`
	WorkExperience []ExperienceDTO `json:"work_experience"`
}

type SearchResponse struct {
	Query        string           `json:"query"`
	TotalResults int              `json:"total_results"`
	Results      SearchResultsDTO `json:"results"`
}

func ToSearchResponse(res *analytics.SearchResult) SearchResponse {
	return SearchResponse{
		Query:        res.Query,
		TotalResults: res.Total(),
		Results: SearchResultsDTO{
			Skills:         mapAll(res.Skills, ToSkillDTO),
			Projects:       mapAll(res.Projects, ToProjectDTO),
			Education:      mapAll(res.Education, ToEducationDTO),
			WorkExperience: mapAll(res.Experience, ToExperienceDTO),
		},
	}
}

type StatsResponse struct {
	TotalSkills         int                         `json:"total_skills"`
	TotalProjects       int                         `json:"total_projects"`
	TotalCertifications int                         `json:"total_certifications"`
	TotalAchievements   int                         `json:"total_achievements"`
	SkillsByCategory    orderedObject               `json:"skills_by_category"`
	ProjectsByStatus    orderedObject               `json:"projects_by_status"`
	TopTechnologies     []analytics.TechnologyCount `json:"top_technologies"`
}

func ToStatsResponse(s *analytics.Stats) StatsResponse {
	return StatsResponse{
		TotalSkills:         s.TotalSkills,
		TotalProjects:       s.TotalProjects,
		TotalCertifications: s.TotalCertifications,
		TotalAchievements:   s.TotalAchievements,
		SkillsByCategory:    ToHistogramDTO(s.SkillsByCategory),
		ProjectsByStatus:    ToHistogramDTO(s.ProjectsByStatus),
		TopTechnologies:     s.TopTechnologies,
	}
}

func mapAll[T any, D any](items []*T, fn func(*T) D) []D {
	out := make([]D, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func derefDate(d *civil.Date) civil.Date {
	if d == nil {
		return civil.Date{}
	}
	return *d
}

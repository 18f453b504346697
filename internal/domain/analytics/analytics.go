// Package analytics derives read-only views from portfolio records:
// technology usage, category and status histograms, top and featured
// subsets, keyword search and profile summaries. Every function is pure and
// keeps the order of its input where the result is a subset.
package analytics

import (
	"errors"
	"sort"
	"strings"

	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
)

var ErrEmptyQuery = errors.New("search query must not be empty")

const (
	SummaryTopSkills     = 5
	StatsTopTechnologies = 10
)

type TechnologyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TechnologyUsage counts technology names across projects, case-sensitive.
// The result is sorted by count descending; ties keep first-seen order.
func TechnologyUsage(projects []*project.Project) []TechnologyCount {
	index := make(map[string]int)
	counts := make([]TechnologyCount, 0)
	for _, p := range projects {
		for _, tech := range p.Technologies {
			if i, ok := index[tech]; ok {
				counts[i].Count++
				continue
			}
			index[tech] = len(counts)
			counts = append(counts, TechnologyCount{Name: tech, Count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopTechnologies is TechnologyUsage truncated to n entries.
func TopTechnologies(projects []*project.Project, n int) []TechnologyCount {
	usage := TechnologyUsage(projects)
	if n >= 0 && len(usage) > n {
		usage = usage[:n]
	}
	return usage
}

// Bucket is one histogram entry. Key is the enum value, Name its label.
type Bucket struct {
	Key   string `json:"-"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillsByCategory counts skills per category in declared category order,
// omitting empty categories.
func SkillsByCategory(skills []*skill.Skill) []Bucket {
	counts := make(map[skill.Category]int, len(skill.Categories))
	for _, s := range skills {
		counts[s.Category]++
	}
	buckets := make([]Bucket, 0, len(skill.Categories))
	for _, c := range skill.Categories {
		if n := counts[c]; n > 0 {
			buckets = append(buckets, Bucket{Key: string(c), Name: c.Label(), Count: n})
		}
	}
	return buckets
}

// ProjectsByStatus counts projects per status in declared status order,
// omitting empty statuses.
func ProjectsByStatus(projects []*project.Project) []Bucket {
	counts := make(map[project.Status]int, len(project.Statuses))
	for _, p := range projects {
		counts[p.Status]++
	}
	buckets := make([]Bucket, 0, len(project.Statuses))
	for _, s := range project.Statuses {
		if n := counts[s]; n > 0 {
			buckets = append(buckets, Bucket{Key: string(s), Name: s.Label(), Count: n})
		}
	}
	return buckets
}

// TopSkills keeps advanced and expert skills in input order.
func TopSkills(skills []*skill.Skill) []*skill.Skill {
	top := make([]*skill.Skill, 0)
	for _, s := range skills {
		if s.Proficiency.IsTop() {
			top = append(top, s)
		}
	}
	return top
}

func FeaturedProjects(projects []*project.Project) []*project.Project {
	featured := make([]*project.Project, 0)
	for _, p := range projects {
		if p.IsFeatured() {
			featured = append(featured, p)
		}
	}
	return featured
}

type CategoryGroup struct {
	Key    string         `json:"-"`
	Name   string         `json:"name"`
	Skills []*skill.Skill `json:"skills"`
}

// GroupSkillsByCategory returns one group per category in declared order,
// including categories with no skills.
func GroupSkillsByCategory(skills []*skill.Skill) []CategoryGroup {
	groups := make([]CategoryGroup, len(skill.Categories))
	index := make(map[skill.Category]int, len(skill.Categories))
	for i, c := range skill.Categories {
		groups[i] = CategoryGroup{Key: string(c), Name: c.Label(), Skills: []*skill.Skill{}}
		index[c] = i
	}
	for _, s := range skills {
		if i, ok := index[s.Category]; ok {
			groups[i].Skills = append(groups[i].Skills, s)
		}
	}
	return groups
}

// Corpus is the record set a search runs over.
type Corpus struct {
	Skills     []*skill.Skill
	Projects   []*project.Project
	Education  []*education.Education
	Experience []*experience.WorkExperience
}

type SearchResult struct {
	Query      string
	Skills     []*skill.Skill
	Projects   []*project.Project
	Education  []*education.Education
	Experience []*experience.WorkExperience
}

func (r *SearchResult) Total() int {
	return len(r.Skills) + len(r.Projects) + len(r.Education) + len(r.Experience)
}

// Search matches the trimmed query case-insensitively against each record
// type independently. A blank query returns ErrEmptyQuery.
func Search(query string, corpus Corpus) (*SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(q)
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	}

	res := &SearchResult{
		Query:      q,
		Skills:     []*skill.Skill{},
		Projects:   []*project.Project{},
		Education:  []*education.Education{},
		Experience: []*experience.WorkExperience{},
	}
	for _, s := range corpus.Skills {
		if match(s.Name, string(s.Category)) {
			res.Skills = append(res.Skills, s)
		}
	}
	for _, p := range corpus.Projects {
		if match(p.Title, p.Description) || p.Technologies.ContainsFold(q) {
			res.Projects = append(res.Projects, p)
		}
	}
	for _, e := range corpus.Education {
		if match(e.Institution, e.Degree, e.FieldOfStudy) {
			res.Education = append(res.Education, e)
		}
	}
	for _, w := range corpus.Experience {
		if match(w.Company, w.Role, w.Description) {
			res.Experience = append(res.Experience, w)
		}
	}
	return res, nil
}

type Summary struct {
	TotalProjects int
	TotalSkills   int
	TopSkills     []string
}

// Summarize counts a profile's projects and skills and names up to five
// top skills in the order given.
func Summarize(skills []*skill.Skill, projects []*project.Project) Summary {
	names := make([]string, 0, SummaryTopSkills)
	for _, s := range TopSkills(skills) {
		if len(names) == SummaryTopSkills {
			break
		}
		names = append(names, s.Name)
	}
	return Summary{
		TotalProjects: len(projects),
		TotalSkills:   len(skills),
		TopSkills:     names,
	}
}

type StatsInput struct {
	Skills             []*skill.Skill
	Projects           []*project.Project
	CertificationCount int
	AchievementCount   int
}

type Stats struct {
	TotalSkills         int
	TotalProjects       int
	TotalCertifications int
	TotalAchievements   int
	SkillsByCategory    []Bucket
	ProjectsByStatus    []Bucket
	TopTechnologies     []TechnologyCount
}

func ComputeStats(in StatsInput) Stats {
	return Stats{
		TotalSkills:         len(in.Skills),
		TotalProjects:       len(in.Projects),
		TotalCertifications: in.CertificationCount,
		TotalAchievements:   in.AchievementCount,
		SkillsByCategory:    SkillsByCategory(in.Skills),
		ProjectsByStatus:    ProjectsByStatus(in.Projects),
		TopTechnologies:     TopTechnologies(in.Projects, StatsTopTechnologies),
	}
}

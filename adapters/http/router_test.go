package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/adapters/ratelimit"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/portfolio-api/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/records"
	searchUC "github.com/khoahotran/portfolio-api/internal/application/usecase/search"
	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	statsUC "github.com/khoahotran/portfolio-api/internal/application/usecase/stats"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func newTestRouter(store *memory.Store, limiter service.RateLimiter) *gin.Engine {
	log := logger.NewNopLogger()
	repos := profileUC.Repositories{
		Profiles:       store.Profiles(),
		Education:      store.Education(),
		Skills:         store.Skills(),
		Projects:       store.Projects(),
		Experience:     store.Experience(),
		Certifications: store.Certifications(),
		Achievements:   store.Achievements(),
	}
	profiles := profileUC.NewProfileUseCase(repos, nil, uuid.Nil, log)
	projects := projectUC.NewProjectUseCase(store.Projects(), nil, log)

	handlers := Handlers{
		Profile:       NewProfileHandler(profiles, log),
		Skill:         NewSkillHandler(skillUC.NewSkillUseCase(store.Skills(), nil, log), log),
		Project:       NewProjectHandler(projects, projectUC.NewFeedUseCase(profiles, store.Projects(), "https://example.com", log), log),
		Education:     NewEducationHandler(records.NewEducationUseCase(store.Education(), nil, log), log),
		Experience:    NewExperienceHandler(records.NewExperienceUseCase(store.Experience(), nil, log), log),
		Certification: NewCertificationHandler(records.NewCertificationUseCase(store.Certifications(), nil, log), log),
		Achievement:   NewAchievementHandler(records.NewAchievementUseCase(store.Achievements(), nil, log), log),
		Search:        NewSearchHandler(searchUC.NewSearchUseCase(store.Skills(), store.Projects(), store.Education(), store.Experience(), log), log),
		Stats:         NewStatsHandler(statsUC.NewStatsUseCase(profiles, store.Skills(), store.Projects(), store.Certifications(), store.Achievements(), log), log),
	}
	return NewRouter(handlers, RouterOptions{Logger: log, RateLimiter: limiter})
}

type RouterTestSuite struct {
	suite.Suite
	Router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterTestSuite) SetupTest() {
	s.Router = newTestRouter(memory.NewStore(), nil)
}

func (s *RouterTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *RouterTestSuite) decode(rr *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), out), rr.Body.String())
}

func (s *RouterTestSuite) createProfile(name string) string {
	rr := s.do(http.MethodPost, "/api/profiles/", gin.H{
		"name":    name,
		"email":   "ada@example.com",
		"summary": "Data scientist",
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var body map[string]any
	s.decode(rr, &body)
	return body["id"].(string)
}

func (s *RouterTestSuite) createSkill(profileID, name, category, proficiency string) *httptest.ResponseRecorder {
	payload := gin.H{"profile": profileID, "name": name, "category": category}
	if proficiency != "" {
		payload["proficiency"] = proficiency
	}
	return s.do(http.MethodPost, "/api/skills/", payload)
}

func (s *RouterTestSuite) createProject(profileID, title string, techs []string, status, achievements string) {
	rr := s.do(http.MethodPost, "/api/projects/", gin.H{
		"profile":      profileID,
		"title":        title,
		"description":  title + " description",
		"technologies": techs,
		"start_date":   "2024-01-15",
		"status":       status,
		"achievements": achievements,
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
}

func (s *RouterTestSuite) TestHealth() {
	rr := s.do(http.MethodGet, "/health/", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())
}

func (s *RouterTestSuite) TestMeWithoutProfiles() {
	rr := s.do(http.MethodGet, "/api/profiles/me/", nil)

	s.Equal(http.StatusNotFound, rr.Code)
	var body map[string]any
	s.decode(rr, &body)
	s.Equal("No profile found", body["error"])
}

func (s *RouterTestSuite) TestMeReturnsNestedProfile() {
	id := s.createProfile("Ada")
	s.Require().Equal(http.StatusCreated, s.createSkill(id, "Go", "programming", "expert").Code)

	rr := s.do(http.MethodGet, "/api/profiles/me/", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var body map[string]any
	s.decode(rr, &body)
	s.Equal(id, body["id"])
	for _, key := range []string{"education", "skills", "projects", "work_experience", "certifications", "achievements"} {
		s.Contains(body, key)
	}
	skills := body["skills"].([]any)
	s.Require().Len(skills, 1)
	s.NotContains(skills[0], "profile", "child records do not echo their profile")
}

func (s *RouterTestSuite) TestSkillDefaultsToIntermediate() {
	id := s.createProfile("Ada")

	rr := s.createSkill(id, "Go", "programming", "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var body map[string]any
	s.decode(rr, &body)
	s.Equal("intermediate", body["proficiency"])
}

func (s *RouterTestSuite) TestDuplicateSkillIsRejected() {
	id := s.createProfile("Ada")
	s.Require().Equal(http.StatusCreated, s.createSkill(id, "Python", "programming", "expert").Code)

	rr := s.createSkill(id, "Python", "tools", "beginner")

	s.Equal(http.StatusBadRequest, rr.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	s.decode(rr, &body)
	s.Contains(body.Fields, "name")
}

func (s *RouterTestSuite) TestUnknownProficiencyIsRejected() {
	id := s.createProfile("Ada")

	rr := s.createSkill(id, "Go", "programming", "guru")

	s.Equal(http.StatusBadRequest, rr.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	s.decode(rr, &body)
	s.Equal("'guru' is not a valid choice", body.Fields["proficiency"])
}

func (s *RouterTestSuite) TestChildOfUnknownProfileIsRejected() {
	rr := s.createSkill(uuid.NewString(), "Go", "programming", "expert")

	s.Equal(http.StatusBadRequest, rr.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	s.decode(rr, &body)
	s.Contains(body.Fields, "profile")
}

func (s *RouterTestSuite) TestTooManyTechnologies() {
	id := s.createProfile("Ada")
	techs := make([]string, 21)
	for i := range techs {
		techs[i] = "tech"
	}

	rr := s.do(http.MethodPost, "/api/projects/", gin.H{
		"profile": id, "title": "Big", "description": "d", "technologies": techs, "start_date": "2024-01-01",
	})

	s.Equal(http.StatusBadRequest, rr.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	s.decode(rr, &body)
	s.Contains(body.Fields, "technologies")
}

func (s *RouterTestSuite) TestDeletingProfileCascades() {
	id := s.createProfile("Ada")
	rr := s.createSkill(id, "Go", "programming", "expert")
	s.Require().Equal(http.StatusCreated, rr.Code)
	var skill map[string]any
	s.decode(rr, &skill)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/profiles/"+id+"/", nil).Code)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/skills/"+skill["id"].(string)+"/", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/profiles/"+id+"/", nil).Code)
}

func (s *RouterTestSuite) TestMalformedID() {
	rr := s.do(http.MethodGet, "/api/skills/not-a-uuid/", nil)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) TestPatchKeepsOmittedFields() {
	id := s.createProfile("Ada")
	rr := s.createSkill(id, "Go", "programming", "advanced")
	var created map[string]any
	s.decode(rr, &created)

	rr = s.do(http.MethodPatch, "/api/skills/"+created["id"].(string)+"/", gin.H{"proficiency": "expert"})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var updated map[string]any
	s.decode(rr, &updated)
	s.Equal("Go", updated["name"])
	s.Equal("programming", updated["category"])
	s.Equal("expert", updated["proficiency"])
	s.Equal(created["created_at"], updated["created_at"])
}

func (s *RouterTestSuite) TestPutRequiresFullBody() {
	id := s.createProfile("Ada")
	rr := s.createSkill(id, "Go", "programming", "advanced")
	var created map[string]any
	s.decode(rr, &created)

	rr = s.do(http.MethodPut, "/api/skills/"+created["id"].(string)+"/", gin.H{"proficiency": "expert"})

	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) TestSkillFilters() {
	id := s.createProfile("Ada")
	s.createSkill(id, "Go", "programming", "expert")
	s.createSkill(id, "Docker", "tools", "advanced")
	s.createSkill(id, "Rust", "programming", "beginner")

	var skills []map[string]any
	rr := s.do(http.MethodGet, "/api/skills/?category=programming", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &skills)
	s.Len(skills, 2)

	rr = s.do(http.MethodGet, "/api/skills/?category=programming&proficiency=expert", nil)
	s.decode(rr, &skills)
	s.Require().Len(skills, 1)
	s.Equal("Go", skills[0]["name"])

	rr = s.do(http.MethodGet, "/api/skills/?category=astrology", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`[]`, rr.Body.String())

	rr = s.do(http.MethodGet, "/api/skills/top/", nil)
	s.decode(rr, &skills)
	s.Len(skills, 2)
}

func (s *RouterTestSuite) TestCategoriesKeepDeclaredOrder() {
	id := s.createProfile("Ada")
	s.createSkill(id, "Docker", "tools", "advanced")
	s.createSkill(id, "Go", "programming", "expert")

	rr := s.do(http.MethodGet, "/api/skills/categories/", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	raw := rr.Body.String()
	keys := []string{"programming", "data_ml", "data_engineering", "cloud", "ml_ai", "web_dev", "tools", "soft_skills"}
	last := -1
	for _, k := range keys {
		i := strings.Index(raw, `"`+k+`":`)
		s.Greater(i, last, "category %s out of order", k)
		last = i
	}

	var body map[string]struct {
		Name   string           `json:"name"`
		Skills []map[string]any `json:"skills"`
	}
	s.decode(rr, &body)
	s.Len(body, 8)
	s.Equal("Developer Tools", body["tools"].Name)
	s.Len(body["tools"].Skills, 1)
	s.Empty(body["cloud"].Skills)
}

func (s *RouterTestSuite) TestProjectFiltersAndAggregates() {
	id := s.createProfile("Ada")
	s.createProject(id, "Dashboard", []string{"JavaScript", "React"}, "completed", "")
	s.createProject(id, "Pipeline", []string{"Python", "Kafka"}, "ongoing", "Cut latency by 40%")
	s.createProject(id, "API", []string{"Python", "Go"}, "completed", "")

	var projects []map[string]any
	rr := s.do(http.MethodGet, "/api/projects/?skill=python", nil)
	s.decode(rr, &projects)
	s.Len(projects, 2)

	rr = s.do(http.MethodGet, "/api/projects/?skill=python&status=ongoing", nil)
	s.decode(rr, &projects)
	s.Require().Len(projects, 1)
	s.Equal("Pipeline", projects[0]["title"])

	rr = s.do(http.MethodGet, "/api/projects/featured/", nil)
	s.decode(rr, &projects)
	s.Require().Len(projects, 1)
	s.Equal("Pipeline", projects[0]["title"])

	var techs []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	rr = s.do(http.MethodGet, "/api/projects/technologies/", nil)
	s.decode(rr, &techs)
	s.Require().Len(techs, 5)
	s.Equal("Python", techs[0].Name)
	s.Equal(2, techs[0].Count)
}

func (s *RouterTestSuite) TestSearch() {
	rr := s.do(http.MethodGet, "/api/search/", nil)
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/api/search/?q=%20", nil)
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/api/search/?q=AI", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"query":"AI","total_results":0,"results":{"skills":[],"projects":[],"education":[],"work_experience":[]}}`, rr.Body.String())

	id := s.createProfile("Ada")
	s.createSkill(id, "TensorFlow", "ml_ai", "advanced")
	s.createProject(id, "Assistant", []string{"OpenAI"}, "completed", "")

	var body struct {
		Query        string                      `json:"query"`
		TotalResults int                         `json:"total_results"`
		Results      map[string][]map[string]any `json:"results"`
	}
	rr = s.do(http.MethodGet, "/api/search/?q=AI", nil)
	s.decode(rr, &body)
	sum := 0
	for _, list := range body.Results {
		sum += len(list)
	}
	s.Equal(2, body.TotalResults)
	s.Equal(sum, body.TotalResults)
}

func (s *RouterTestSuite) TestStats() {
	rr := s.do(http.MethodGet, "/api/stats/", nil)
	s.Equal(http.StatusNotFound, rr.Code)

	id := s.createProfile("Ada")
	s.createSkill(id, "Docker", "tools", "advanced")
	s.createSkill(id, "Go", "programming", "expert")
	s.createProject(id, "API", []string{"Go"}, "ongoing", "")
	s.createProject(id, "CLI", []string{"Go"}, "completed", "")

	rr = s.do(http.MethodGet, "/api/stats/", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	raw := rr.Body.String()
	s.Less(strings.Index(raw, `"programming":`), strings.Index(raw, `"tools":`))
	s.Less(strings.Index(raw, `"completed":`), strings.Index(raw, `"ongoing":`))

	var body struct {
		TotalSkills      int `json:"total_skills"`
		TotalProjects    int `json:"total_projects"`
		SkillsByCategory map[string]struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"skills_by_category"`
		TopTechnologies []map[string]any `json:"top_technologies"`
	}
	s.decode(rr, &body)
	s.Equal(2, body.TotalSkills)
	s.Equal(2, body.TotalProjects)
	s.Len(body.SkillsByCategory, 2)
	s.Equal("Programming Languages", body.SkillsByCategory["programming"].Name)
	s.Len(body.TopTechnologies, 1)
}

func (s *RouterTestSuite) TestSummary() {
	id := s.createProfile("Ada")
	s.createSkill(id, "Go", "programming", "expert")
	s.createSkill(id, "Excel", "tools", "beginner")

	rr := s.do(http.MethodGet, "/api/profiles/"+id+"/summary/", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var body map[string]any
	s.decode(rr, &body)
	s.Equal(float64(2), body["total_skills"])
	s.Equal(float64(0), body["total_projects"])
	s.Equal([]any{"Go"}, body["top_skills"])

	rr = s.do(http.MethodGet, "/api/profiles/"+uuid.NewString()+"/summary/", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *RouterTestSuite) TestRecordEndpoints() {
	id := s.createProfile("Ada")

	cases := []struct {
		path string
		body gin.H
	}{
		{"/api/education/", gin.H{"profile": id, "institution": "MIT", "degree": "BSc", "field_of_study": "CS", "start_date": "2018-09-01", "cgpa": 9.5}},
		{"/api/work-experience/", gin.H{"profile": id, "company": "Acme", "role": "Engineer", "description": "Built things", "start_date": "2022-01-01", "is_current": true}},
		{"/api/certifications/", gin.H{"profile": id, "name": "CKA", "issuer": "CNCF", "issue_date": "2023-05-01"}},
		{"/api/achievements/", gin.H{"profile": id, "title": "Hackathon winner", "description": "First place"}},
	}
	for _, tc := range cases {
		rr := s.do(http.MethodPost, tc.path, tc.body)
		s.Require().Equal(http.StatusCreated, rr.Code, "%s: %s", tc.path, rr.Body.String())

		var created map[string]any
		s.decode(rr, &created)
		s.NotContains(created, "profile")

		rr = s.do(http.MethodGet, tc.path+created["id"].(string)+"/", nil)
		s.Equal(http.StatusOK, rr.Code, tc.path)

		var list []map[string]any
		s.decode(s.do(http.MethodGet, tc.path+"?profile="+id, nil), &list)
		s.Len(list, 1, tc.path)

		s.Equal(http.StatusNoContent, s.do(http.MethodDelete, tc.path+created["id"].(string)+"/", nil).Code, tc.path)
	}
}

func (s *RouterTestSuite) TestCertificationWithoutIssueDate() {
	id := s.createProfile("Ada")

	rr := s.do(http.MethodPost, "/api/certifications/", gin.H{"profile": id, "name": "CKA", "issuer": "CNCF"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var created map[string]any
	s.decode(rr, &created)
	s.Contains(created, "issue_date")
	s.Nil(created["issue_date"])
}

func (s *RouterTestSuite) TestFeed() {
	id := s.createProfile("Ada")
	s.createProject(id, "Pipeline", []string{"Go"}, "completed", "")

	rr := s.do(http.MethodGet, "/api/projects/feed/", nil)

	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "application/rss+xml")
	s.Contains(rr.Body.String(), "<title>Pipeline</title>")
}

func TestRateLimitReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(memory.NewStore(), ratelimit.NewLocalLimiter(1, time.Hour))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/skills/", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/skills/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health/", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

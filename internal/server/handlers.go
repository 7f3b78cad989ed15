package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hhradar/internal/model"
	"hhradar/internal/service"
	"hhradar/internal/store"
	"hhradar/internal/theme"
)

// collectRequest carries the collection parameters plus the optional filters
// applied to freshly fetched vacancies before they are persisted.
type collectRequest struct {
	Query              string                 `json:"query"`
	VacancyCount       int                    `json:"vacancy_count"`
	Keywords           string                 `json:"keywords"`
	MinSalary          int                    `json:"min_salary"`
	Experience         model.ExperienceBucket `json:"experience"`
	Employment         model.EmploymentBucket `json:"employment"`
	MinExperienceYears int                    `json:"min_experience_years"`
}

func (r collectRequest) filters() model.FilterSpec {
	return model.FilterSpec{
		Keywords:           r.Keywords,
		MinSalary:          r.MinSalary,
		Experience:         r.Experience,
		Employment:         r.Employment,
		MinExperienceYears: r.MinExperienceYears,
	}
}

func (s *Server) collect(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	res := s.svc.Collect(c.Request.Context(), service.CollectRequest{
		Query:   req.Query,
		Count:   req.VacancyCount,
		Filters: req.filters(),
	})
	c.JSON(http.StatusOK, res)
}

func (s *Server) listVacancies(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	minSalary, ok := intQuery(c, "min_salary", 0)
	if !ok {
		return
	}
	minYears, ok := intQuery(c, "min_experience_years", 0)
	if !ok {
		return
	}

	keywords := c.Query("keywords")
	if keywords == "" {
		keywords = c.Query("search")
	}
	spec := model.FilterSpec{
		Keywords:           keywords,
		MinSalary:          minSalary,
		Experience:         model.ExperienceBucket(c.Query("experience")),
		Employment:         model.EmploymentBucket(c.Query("employment")),
		MinExperienceYears: minYears,
	}

	res, err := s.svc.List(c.Request.Context(), spec, page)
	if err != nil {
		s.logger.Error("list vacancies failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing vacancies failed"})
		return
	}

	style := theme.ParseStyle(c.Query("style"))
	if style == theme.StyleNone {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":              theme.ApplyAll(style, res.Items),
		"total_count":        res.TotalCount,
		"page":               res.Page,
		"total_pages":        res.TotalPages,
		"has_active_filters": res.HasActiveFilters,
		"style":              style,
	})
}

// filterRequest is the JSON-API variant of filtered listing.
type filterRequest struct {
	Filters model.FilterSpec `json:"filters"`
	Page    int              `json:"page"`
}

func (s *Server) filterVacancies(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	res, err := s.svc.List(c.Request.Context(), req.Filters, req.Page)
	if err != nil {
		s.logger.Error("filter vacancies failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filtering vacancies failed"})
		return
	}

	// This endpoint renders display text instead of bucket codes.
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"vacancies":   theme.ApplyAll(theme.StyleNone, res.Items),
		"count":       res.TotalCount,
		"page":        res.Page,
		"total_pages": res.TotalPages,
	})
}

func (s *Server) statistics(c *gin.Context) {
	stats, err := s.svc.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("statistics failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "statistics unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type letterRequest struct {
	VacancyID int64 `json:"vacancy_id"`
}

func (s *Server) generateLetter(c *gin.Context) {
	var req letterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	text, err := s.svc.Letter(c.Request.Context(), req.VacancyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vacancy not found"})
			return
		}
		s.logger.Error("letter generation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "letter generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "letter": text})
}

// intQuery parses an optional integer query parameter, answering 400 itself
// when the value is present but not a number.
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

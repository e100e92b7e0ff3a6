package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/catalog"
	"github.com/spigell/career-compass/internal/history"
	"github.com/spigell/career-compass/internal/jobs"
	"github.com/spigell/career-compass/internal/mentors"
	"github.com/spigell/career-compass/internal/profile"
)

const defaultUserName = "User"

type predictResponse struct {
	User string `json:"user"`
	*catalog.Recommendation
}

type chatRequest struct {
	Message         string   `json:"message" binding:"required"`
	Career          string   `json:"career"`
	Recommendations []string `json:"recommendations"`
	Mentors         []struct {
		Name string `json:"name"`
	} `json:"mentors"`
	Jobs []struct {
		Title string `json:"title"`
	} `json:"jobs"`
}

func (r *chatRequest) context() *ai.Context {
	c := &ai.Context{Career: r.Career, Recommendations: r.Recommendations}
	for _, m := range r.Mentors {
		c.Mentors = append(c.Mentors, valueOr(m.Name, "Unknown"))
	}
	for _, j := range r.Jobs {
		c.Jobs = append(c.Jobs, valueOr(j.Title, "N/A"))
	}
	return c
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Career Compass API is running!"})
}

func (s *Server) handlePredict(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if isEmptyBody(body) {
		abortWithError(c, http.StatusBadRequest, errors.New("no input data provided"))
		return
	}

	var p profile.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	user := valueOr(p.Name, defaultUserName)

	rec, err := s.deps.Catalog.Recommend(&p)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	log := s.requestLog(c, rec.Career)
	for _, step := range rec.Steps {
		log.Debug("resolution step", zap.String("name", step.Name), zap.String("outcome", step.Outcome))
	}

	if s.deps.History != nil {
		record := history.NewRecord(user, rec.Career, rec.Recommendations, string(rec.Path))
		if err := s.deps.History.Save(c.Request.Context(), record); err != nil {
			log.Warn("failed to store recommendation", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, predictResponse{User: user, Recommendation: rec})
}

func (s *Server) handleRoadmap(c *gin.Context) {
	steps, ok := s.deps.Catalog.StoredRoadmap(c.Param("career"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"roadmap": []string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roadmap": steps})
}

func (s *Server) handleMentors(c *gin.Context) {
	list := s.deps.Catalog.Mentors(c.Param("career"))
	if list == nil {
		list = []mentors.Mentor{}
	}
	c.JSON(http.StatusOK, gin.H{"mentors": list})
}

func (s *Server) handleJobs(c *gin.Context) {
	if s.deps.Jobs == nil {
		abortWithError(c, http.StatusServiceUnavailable, ErrJobsDisabled)
		return
	}

	career := strings.TrimSpace(c.Query("career"))
	if career == "" {
		c.JSON(http.StatusOK, gin.H{"jobs": []*jobs.Job{}})
		return
	}

	found, err := s.deps.Jobs.Search(c.Request.Context(), career)
	if err != nil {
		s.requestLog(c, career).Error("job search failed", zap.Error(err))
		abortWithError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": found.List()})
}

func (s *Server) handleChat(c *gin.Context) {
	if s.deps.Assistant == nil {
		abortWithError(c, http.StatusServiceUnavailable, ErrAssistantDisabled)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		abortWithError(c, http.StatusBadRequest, ai.ErrEmptyMessage)
		return
	}

	reply, err := s.deps.Assistant.Reply(c.Request.Context(), req.Message, req.context())
	if errors.Is(err, ai.ErrEmptyMessage) {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.requestLog(c, req.Career).Error("assistant failed", zap.Error(err))
		abortWithError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.deps.History == nil {
		abortWithError(c, http.StatusServiceUnavailable, ErrHistoryDisabled)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := s.deps.History.Recent(c.Request.Context(), limit)
	if err != nil {
		s.requestLog(c, "").Error("history query failed", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("null"))
}

func valueOr(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}

package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ServerName = "resume-ats"
	Version    = "1.0.0"
)

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// Report is the health payload.
type Report struct {
	Status    string            `json:"status"`
	Server    string            `json:"server"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Tools     []string          `json:"tools"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	tools  []string
	checks map[string]Checker
	now    func() time.Time
}

// NewService constructs a health service advertising tools.
func NewService(tools []string) *Service {
	return &Service{
		tools:  append([]string(nil), tools...),
		checks: make(map[string]Checker),
		now:    time.Now,
	}
}

// AddCheck registers a dependency probe under name.
func (s *Service) AddCheck(name string, check Checker) {
	s.checks[name] = check
}

// Status runs the registered checks. Any failing check degrades the status.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{
		Status:    "ok",
		Server:    ServerName,
		Version:   Version,
		Timestamp: s.now().UTC(),
		Tools:     s.tools,
	}
	if len(s.checks) == 0 {
		return report
	}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report.Checks = make(map[string]string, len(names))
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.checks[name](checkCtx)
		cancel()
		if err != nil {
			report.Checks[name] = "error: " + err.Error()
			report.Status = "degraded"
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}

// Handler serves the report; degraded reports use 503.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report := s.Status(c.Request.Context())
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}

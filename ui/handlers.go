package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"normfit/adapters/stats/goodness"
	"normfit/domain/fit"
	"normfit/internal/errors"

	"github.com/gin-gonic/gin"
)

// fitRequest carries optional inputs; missing ones fall back to configured defaults
type fitRequest struct {
	Mean        *float64 `json:"mean" form:"mean"`
	Variance    *float64 `json:"variance" form:"variance"`
	Size        *int     `json:"size" form:"size"`
	Seed        *int64   `json:"seed" form:"seed"`
	Expectation string   `json:"expectation" form:"expectation"`
}

func (s *Server) params(req fitRequest) (fit.Params, error) {
	p := fit.Params{
		Mean:     s.defaults.DefaultMean,
		Variance: s.defaults.DefaultVariance,
		Size:     s.defaults.DefaultSize,
		Seed:     req.Seed,
	}
	if req.Mean != nil {
		p.Mean = *req.Mean
	}
	if req.Variance != nil {
		p.Variance = *req.Variance
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.Expectation != "" {
		mode, err := fit.ParseExpectationMode(req.Expectation)
		if err != nil {
			return fit.Params{}, errors.Wrap(err, "invalid request")
		}
		p.Expectation = mode
	}
	return p, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFitJSON(c *gin.Context) {
	var req fitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.Wrap(errors.InvalidInput(err.Error()), "invalid request body"))
		return
	}
	s.runFit(c, req)
}

func (s *Server) handleFitQuery(c *gin.Context) {
	var req fitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.respondError(c, errors.Wrap(errors.InvalidInput(err.Error()), "invalid query"))
		return
	}
	s.runFit(c, req)
}

func (s *Server) runFit(c *gin.Context, req fitRequest) {
	params, err := s.params(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rep, err := s.service.Run(c.Request.Context(), params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleFitWorkbook(c *gin.Context) {
	var req fitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.respondError(c, errors.Wrap(errors.InvalidInput(err.Error()), "invalid query"))
		return
	}
	params, err := s.params(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rep, err := s.service.Run(c.Request.Context(), params)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", s.exporter.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="normfit-%s.xlsx"`, rep.RunID))
	c.Status(http.StatusOK)
	if err := s.exporter.Write(c.Writer, rep); err != nil {
		s.logger.Error("failed to stream workbook for run %s: %v", rep.RunID, err)
	}
}

func (s *Server) handleCritical(c *gin.Context) {
	df, err := strconv.Atoi(c.Param("df"))
	if err != nil {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("degrees of freedom %q is not an integer", c.Param("df"))))
		return
	}
	alpha := s.service.Options().Alpha
	critical, err := goodness.CriticalValueAt(alpha, df)
	if err != nil {
		s.respondError(c, errors.Wrap(err, "critical value lookup failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"degrees_of_freedom": df, "alpha": alpha, "critical": critical})
}

func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeDomainError, errors.CodeDegenerate:
		status = http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": err.Error()})
}

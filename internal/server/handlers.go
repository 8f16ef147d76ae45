package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/emissions"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/pagination"
)

// MaxTextLength bounds the description accepted by the parse endpoint, in bytes.
const MaxTextLength = 4096

// Error codes returned in the "error" field of failed responses.
const (
	codeBadRequest      = "bad_request"
	codeInvalidCategory = "invalid_category"
	codeTextTooLong     = "text_too_long"
	codeNotFound        = "not_found"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Text        string `json:"text"`
	Category    string `json:"category,omitempty"`
	Equivalents bool   `json:"equivalents,omitempty"`
	// Records asks for one log record per item, stamped with the request time.
	Records bool `json:"records,omitempty"`
}

// ParseResponse is the body of a successful POST /v1/parse.
type ParseResponse struct {
	Activity      activity.Activity           `json:"activity"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
	Records       []activity.Record           `json:"records,omitempty"`
	Cached        bool                        `json:"cached"`
}

// ClassifyResponse is the body of GET /v1/classify.
type ClassifyResponse struct {
	Category emissions.Category `json:"category"`
	Keyword  string             `json:"keyword,omitempty"`
}

// FactorsResponse is the body of GET /v1/factors. Total counts every
// factor matching the category; Factors holds the requested window.
type FactorsResponse struct {
	Factors    []emissions.EmissionFactor `json:"factors"`
	Total      int                        `json:"total"`
	Pagination *pagination.Meta           `json:"pagination,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"factors":   s.parser.Registry().Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, "request body must be a JSON object")
		return
	}
	if len(req.Text) > MaxTextLength {
		abortWithError(c, http.StatusBadRequest, codeTextTooLong, "text exceeds the maximum length")
		return
	}

	hint, err := activity.ParseHint(req.Category)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidCategory, err.Error())
		return
	}

	ctx := c.Request.Context()
	log := logging.FromContext(ctx)

	resp := ParseResponse{}
	if s.cache != nil {
		resp.Activity, resp.Cached = s.cache.Get(req.Text, hint)
		s.metrics.ObserveCache(resp.Cached)
	}
	if !resp.Cached {
		resp.Activity, err = s.parser.Parse(req.Text, hint)
		if err != nil {
			if errors.Is(err, activity.ErrInvalidCategory) {
				abortWithError(c, http.StatusBadRequest, codeInvalidCategory, err.Error())
				return
			}
			log.Error().Ctx(ctx).Err(err).Msg("parse failed")
			abortWithError(c, http.StatusInternalServerError, "internal", "parse failed")
			return
		}
		if s.cache != nil {
			s.cache.Set(req.Text, hint, resp.Activity)
		}
	}
	s.metrics.ObserveParse(resp.Activity)

	if req.Equivalents {
		out, eqErr := greenops.CalculateKg(resp.Activity.TotalCO2Impact)
		if eqErr != nil {
			log.Warn().Ctx(ctx).Err(eqErr).Msg("equivalency calculation failed")
		} else if !out.IsEmpty {
			resp.Equivalencies = &out
		}
	}

	if req.Records {
		resp.Records = activity.Records(resp.Activity, time.Now())
	}

	log.Debug().Ctx(ctx).
		Str("category", resp.Activity.Category.String()).
		Int("items", len(resp.Activity.Items)).
		Float64("co2e_kg", resp.Activity.TotalCO2Impact).
		Bool("cached", resp.Cached).
		Msg("activity parsed")

	c.JSON(http.StatusOK, resp)
}

func (s *Server) classify(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, "missing text query parameter")
		return
	}
	category, keyword := activity.ClassifyWithKeyword(text)
	c.JSON(http.StatusOK, ClassifyResponse{Category: category, Keyword: keyword})
}

// factorCategory reads the optional category query parameter. The general
// sentinel has no factors and is rejected.
func factorCategory(c *gin.Context) (emissions.Category, bool) {
	raw := c.Query("category")
	if raw == "" {
		return "", true
	}
	category, err := emissions.ParseCategory(raw)
	if err == nil && !category.IsKnown() {
		err = emissions.ErrUnknownCategory
	}
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidCategory, err.Error())
		return "", false
	}
	return category, true
}

// pageParams reads limit, offset, page, page_size and sort query parameters.
func pageParams(c *gin.Context) (pagination.Params, error) {
	var params pagination.Params
	ints := []struct {
		key string
		dst *int
	}{
		{"limit", &params.Limit},
		{"offset", &params.Offset},
		{"page", &params.Page},
		{"page_size", &params.PageSize},
	}
	for _, q := range ints {
		raw := c.Query(q.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("%s must be an integer, got %q", q.key, raw)
		}
		*q.dst = n
	}

	var err error
	params.SortField, params.SortOrder, err = pagination.ParseSort(c.Query("sort"))
	return params, err
}

func (s *Server) listFactors(c *gin.Context) {
	category, ok := factorCategory(c)
	if !ok {
		return
	}
	params, err := pageParams(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	reg := s.parser.Registry()
	factors := reg.Factors()
	if category != "" {
		factors = reg.FactorsByCategory(category)
	}

	page, meta, err := s.sorter.Page(factors, params)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	resp := FactorsResponse{Factors: page, Total: len(factors)}
	if params.IsEnabled() {
		resp.Pagination = &meta
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getFactor(c *gin.Context) {
	category, ok := factorCategory(c)
	if !ok {
		return
	}

	name := c.Param("name")
	factor, found := s.parser.Registry().FindFactor(name, category)
	if !found {
		abortWithError(c, http.StatusNotFound, codeNotFound, "no emission factor matches "+name)
		return
	}
	c.JSON(http.StatusOK, factor)
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/export"
	"github.com/aaravbangsmetal/blaster/internal/llm"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/service"
)

// defaultHistoryLimit caps the history endpoint when no limit is given.
const defaultHistoryLimit = 20

// Handler holds the HTTP request handlers.
type Handler struct {
	search  Searcher
	crawl   Crawler
	answer  Answerer
	tweets  TweetStatter
	history HistoryReader // nil when history is disabled
	log     logger.Logger
}

// NewHandler creates a handler instance. history may be nil.
func NewHandler(search Searcher, crawl Crawler, answer Answerer, tweets TweetStatter, history HistoryReader, log logger.Logger) *Handler {
	return &Handler{
		search:  search,
		crawl:   crawl,
		answer:  answer,
		tweets:  tweets,
		history: history,
		log:     log,
	}
}

// Search handles POST /api/search.
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.search.Search(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("search failed", logger.Err(err))
		writeError(c, statusFor(err), codeFor(err, codeSearchError), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Crawl handles POST /api/crawl and GET /api/crawl?query=.
func (h *Handler) Crawl(c *gin.Context) {
	var req domain.CrawlRequest

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		if pages := c.Query("max_pages"); pages != "" {
			if n, err := strconv.Atoi(pages); err == nil {
				req.MaxPages = n
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.crawl.Crawl(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("crawl failed", logger.String("query", req.Query), logger.Err(err))
		writeError(c, statusFor(err), codeFor(err, codeCrawlError), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Answer handles POST /api/answer.
func (h *Handler) Answer(c *gin.Context) {
	var req domain.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.answer.Answer(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("answer failed", logger.String("query", req.Query), logger.Err(err))
		writeError(c, statusFor(err), codeFor(err, codeAnswerError), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TweetStats handles POST /api/tweets/stats.
func (h *Handler) TweetStats(c *gin.Context) {
	var req domain.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.tweets.Stats(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("tweet stats failed", logger.String("query", req.Query), logger.Err(err))
		writeError(c, statusFor(err), codeFor(err, codeTweetError), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TweetExport handles GET /api/tweets/export?query=&format=csv|json.
func (h *Handler) TweetExport(c *gin.Context) {
	req := domain.StatsRequest{Query: c.Query("query")}
	if count := c.Query("count"); count != "" {
		if n, err := strconv.Atoi(count); err == nil {
			req.Count = n
		}
	}

	format := c.DefaultQuery("format", export.FormatJSON)
	contentType := export.ContentType(format)
	if contentType == "" {
		badRequest(c, "unsupported format "+format)
		return
	}

	report, err := h.tweets.Stats(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("tweet export failed", logger.String("query", req.Query), logger.Err(err))
		writeError(c, statusFor(err), codeFor(err, codeExportError), err)
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="tweets.`+format+`"`)
	c.Status(http.StatusOK)

	if writeErr := export.Write(c.Writer, format, report); writeErr != nil {
		h.log.Error("export write failed", logger.Err(writeErr))
	}
}

// History handles GET /api/history?limit=.
func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		writeError(c, http.StatusNotImplemented, codeHistoryError, errors.New("search history is disabled"))
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("history read failed", logger.Err(err))
		writeError(c, http.StatusInternalServerError, codeHistoryError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": records})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
}

// Ready handles GET /ready.
func (h *Handler) Ready(c *gin.Context) {
	h.Health(c)
}

// badRequest writes a 400 with the uniform error shape.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     msg,
		Code:      codeInvalidRequest,
		Timestamp: time.Now(),
	})
}

// writeError writes the uniform error shape.
func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Timestamp: time.Now(),
	})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoResults), errors.Is(err, service.ErrNoSources):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, llm.ErrEmptyCompletion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// codeFor keeps validation errors distinguishable from provider failures.
func codeFor(err error, fallback string) string {
	if isValidationError(err) {
		return codeInvalidRequest
	}
	return fallback
}

// isValidationError reports whether the error came from request validation.
func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrTooManyQueries) ||
		errors.Is(err, domain.ErrQueryTooLong) ||
		errors.Is(err, domain.ErrUnknownCategory)
}

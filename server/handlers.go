package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/newspool/newspool/pkg/domain"
)

// sourceRec is the JSON representation of a source. The API key is never
// echoed back, only whether one is set.
type sourceRec struct {
	ID                  int64                   `json:"id"`
	Name                string                  `json:"name"`
	URL                 string                  `json:"url"`
	Type                string                  `json:"type"`
	HasAPIKey           bool                    `json:"has_api_key"`
	Headers             map[string]string       `json:"headers,omitempty"`
	Selectors           *domain.ScrapeSelectors `json:"selectors,omitempty"`
	Enabled             bool                    `json:"enabled"`
	Priority            int                     `json:"priority"`
	QualityScore        float64                 `json:"quality_score"`
	ConsecutiveFailures int                     `json:"consecutive_failures"`
	LastFetchedAt       *time.Time              `json:"last_fetched_at,omitempty"`
	NextFetchAt         *time.Time              `json:"next_fetch_at,omitempty"`
	FetchInterval       string                  `json:"fetch_interval"`
	ArticlesToday       int                     `json:"articles_today"`
	LastError           string                  `json:"last_error,omitempty"`
}

// createSourceRequest is the payload for registering a new source
type createSourceRequest struct {
	Name          string                  `json:"name"`
	URL           string                  `json:"url"`
	Type          string                  `json:"type"`
	APIKey        string                  `json:"api_key"`
	Headers       map[string]string       `json:"headers"`
	Selectors     *domain.ScrapeSelectors `json:"selectors"`
	Priority      int                     `json:"priority"`
	FetchInterval string                  `json:"fetch_interval"`
}

// articleRec is the JSON representation of an article
type articleRec struct {
	ID           int64      `json:"id"`
	SourceID     int64      `json:"source_id"`
	SourceName   string     `json:"source_name"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	Summary      string     `json:"summary,omitempty"`
	Content      string     `json:"content,omitempty"`
	Author       string     `json:"author,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	QualityScore int        `json:"quality_score"`
	CreatedAt    time.Time  `json:"created_at"`
}

// healthRec is the JSON representation of one health check
type healthRec struct {
	Status          domain.HealthStatus `json:"status"`
	ResponseTimeMs  int64               `json:"response_time_ms"`
	ArticlesFetched int                 `json:"articles_fetched"`
	ErrorMessage    string              `json:"error_message,omitempty"`
	CheckedAt       time.Time           `json:"checked_at"`
}

// listSourcesHandler returns all sources, optionally only enabled ones
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"

	sources, err := s.sources.GetSources(r.Context(), enabledOnly)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	recs := make([]sourceRec, len(sources))
	for i := range sources {
		recs[i] = toSourceRec(&sources[i])
	}
	RenderJSON(w, r, http.StatusOK, recs)
}

// createSourceHandler registers a new source
func (s *Server) createSourceHandler(w http.ResponseWriter, r *http.Request) {
	var req createSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("parse request: %w", err), http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		RenderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	srcType := domain.SourceType(req.Type)
	switch srcType {
	case domain.SourceRSS, domain.SourceAPI, domain.SourceScraper:
	case "":
		srcType = domain.SourceRSS
	default:
		RenderError(w, r, fmt.Errorf("unsupported source type %q", req.Type), http.StatusBadRequest)
		return
	}
	if srcType == domain.SourceScraper && req.Selectors == nil {
		RenderError(w, r, fmt.Errorf("scraper source requires selectors"), http.StatusBadRequest)
		return
	}

	var interval time.Duration
	if req.FetchInterval != "" {
		var err error
		if interval, err = time.ParseDuration(req.FetchInterval); err != nil {
			RenderError(w, r, fmt.Errorf("parse fetch_interval: %w", err), http.StatusBadRequest)
			return
		}
	}

	src := &domain.Source{
		Name:          req.Name,
		URL:           req.URL,
		Type:          srcType,
		APIKey:        req.APIKey,
		Headers:       req.Headers,
		Selectors:     req.Selectors,
		Enabled:       true,
		Priority:      req.Priority,
		FetchInterval: interval,
	}
	if err := s.sources.CreateSource(r.Context(), src); err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	rec := toSourceRec(src)
	RenderJSON(w, r, http.StatusCreated, rec)
}

// getSourceHandler returns a single source
func (s *Server) getSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, http.StatusNotFound)
		return
	}

	rec := toSourceRec(src)
	RenderJSON(w, r, http.StatusOK, rec)
}

// enableSourceHandler re-enables a source
func (s *Server) enableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.setSourceActive(w, r, true)
}

// disableSourceHandler disables a source without deleting its articles
func (s *Server) disableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.setSourceActive(w, r, false)
}

func (s *Server) setSourceActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.sources.SetSourceActive(r.Context(), id, active); err != nil {
		if strings.Contains(err.Error(), "not found") {
			RenderError(w, r, err, http.StatusNotFound)
			return
		}
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{"id": id, "enabled": active})
}

// fetchSourceHandler triggers an immediate fetch of one source
func (s *Server) fetchSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.scheduler.FetchSourceNow(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, result)
}

// sourceHealthHandler returns the recent health log for a source
func (s *Server) sourceHealthHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	limit := queryInt(r, "limit", 20)
	records, err := s.health.GetRecentHealthChecks(r.Context(), id, limit)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	recs := make([]healthRec, len(records))
	for i, rec := range records {
		recs[i] = healthRec{
			Status:          rec.Status,
			ResponseTimeMs:  rec.ResponseTimeMs,
			ArticlesFetched: rec.ArticlesFetched,
			ErrorMessage:    rec.ErrorMessage,
			CheckedAt:       rec.CheckedAt,
		}
	}
	RenderJSON(w, r, http.StatusOK, recs)
}

// listArticlesHandler returns stored articles, newest first
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.ArticleFilter{
		SourceID: int64(queryInt(r, "source_id", 0)),
		Search:   r.URL.Query().Get("search"),
		MinScore: queryInt(r, "min_score", 0),
		Limit:    queryInt(r, "limit", 50),
		Offset:   queryInt(r, "offset", 0),
	}
	if since := r.URL.Query().Get("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			RenderError(w, r, fmt.Errorf("parse since: %w", err), http.StatusBadRequest)
			return
		}
		filter.Since = ts
	}

	articles, err := s.articles.GetArticles(r.Context(), filter)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	recs := make([]articleRec, len(articles))
	for i := range articles {
		recs[i] = toArticleRec(&articles[i], false)
	}
	RenderJSON(w, r, http.StatusOK, recs)
}

// getArticleHandler returns a single article including its full content
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	article, err := s.articles.GetArticle(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, http.StatusNotFound)
		return
	}

	rec := toArticleRec(article, true)
	RenderJSON(w, r, http.StatusOK, rec)
}

// fetchAllHandler triggers a full ingestion cycle and returns its summary
func (s *Server) fetchAllHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.scheduler.FetchAll(r.Context())
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, summary)
}

// pathID extracts the numeric {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// queryInt parses an integer query parameter with a fallback
func queryInt(r *http.Request, name string, fallback int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func toSourceRec(src *domain.Source) sourceRec {
	rec := sourceRec{
		ID:                  src.ID,
		Name:                src.Name,
		URL:                 src.URL,
		Type:                string(src.Type),
		HasAPIKey:           src.APIKey != "",
		Headers:             src.Headers,
		Selectors:           src.Selectors,
		Enabled:             src.Enabled,
		Priority:            src.Priority,
		QualityScore:        src.QualityScore,
		ConsecutiveFailures: src.ConsecutiveFailures,
		FetchInterval:       src.FetchInterval.String(),
		ArticlesToday:       src.ArticlesToday,
		LastError:           src.LastError,
	}
	if !src.LastFetchedAt.IsZero() {
		t := src.LastFetchedAt
		rec.LastFetchedAt = &t
	}
	if !src.NextFetchAt.IsZero() {
		t := src.NextFetchAt
		rec.NextFetchAt = &t
	}
	return rec
}

func toArticleRec(article *domain.Article, withContent bool) articleRec {
	rec := articleRec{
		ID:           article.ID,
		SourceID:     article.SourceID,
		SourceName:   article.SourceName,
		Title:        article.Title,
		URL:          article.URL,
		Summary:      article.Summary,
		Author:       article.Author,
		ImageURL:     article.ImageURL,
		QualityScore: article.QualityScore,
		CreatedAt:    article.CreatedAt,
	}
	if withContent {
		rec.Content = article.Content
	}
	if !article.PublishedAt.IsZero() {
		t := article.PublishedAt
		rec.PublishedAt = &t
	}
	return rec
}

package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// defaultOwner tags records when the identity service supplies no principal.
const defaultOwner = "anonymous"

// Server exposes the pipeline over HTTP. Authentication happens upstream; the
// principal arrives opaquely in the X-User header and is used only to tag
// stored records.
type Server struct {
	pipeline *Pipeline
	store    *Store
	log      *zap.SugaredLogger
}

// NewServer creates the HTTP surface. The store may be nil, in which case
// generated articles are returned but not persisted.
func NewServer(pipeline *Pipeline, store *Store, log *zap.SugaredLogger) *Server {
	return &Server{pipeline: pipeline, store: store, log: log}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/articles", s.handleList)
	mux.HandleFunc("/api/articles/", s.handleGet)
	return mux
}

type generateRequest struct {
	Link string `json:"link"`
}

type generateResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": MsgInvalidRequestVerb})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Link) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": MsgInvalidInput})
		return
	}

	outcome := s.pipeline.Run(r.Context(), req.Link)

	switch outcome.Status {
	case StatusOK:
		s.persist(r, req.Link, outcome.Article)
		writeJSON(w, http.StatusOK, generateResponse{
			Title:   outcome.Article.Title,
			Content: outcome.Article.Summary,
		})
	case StatusInputError:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": outcome.Message})
	default:
		// transcript_unavailable and synthesis_failed carry their reason in
		// the documented error body.
		writeJSON(w, http.StatusInternalServerError, generateResponse{
			Title:   "Error",
			Content: outcome.Message,
		})
	}
}

// persist saves a generated article for the requesting principal. Storage
// failures are logged but never fail the request: the article was generated.
func (s *Server) persist(r *http.Request, link string, article *Article) {
	if s.store == nil {
		return
	}

	stored := &StoredArticle{
		Owner:     ownerFrom(r),
		Title:     article.Title,
		SourceURL: link,
		Content:   article.Summary,
	}
	if _, err := s.store.Save(r.Context(), stored); err != nil {
		s.log.Errorw("failed to persist article", "owner", stored.Owner, "error", err)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": MsgInvalidRequestVerb})
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "persistence disabled"})
		return
	}

	articles, err := s.store.ListByOwner(r.Context(), ownerFrom(r))
	if err != nil {
		s.log.Errorw("failed to list articles", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if articles == nil {
		articles = []StoredArticle{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": MsgInvalidRequestVerb})
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "persistence disabled"})
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/articles/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid article id"})
		return
	}

	article, err := s.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}
	if err != nil {
		s.log.Errorw("failed to load article", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	// Articles are visible to their owner only.
	if article.Owner != ownerFrom(r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not your article"})
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func ownerFrom(r *http.Request) string {
	if owner := strings.TrimSpace(r.Header.Get("X-User")); owner != "" {
		return owner
	}
	return defaultOwner
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"net/http"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/formatstore"
	"github.com/contentpilot/viral-formats-bot/internal/generator"
	"github.com/contentpilot/viral-formats-bot/internal/learning"
	"github.com/contentpilot/viral-formats-bot/internal/llm"
	"github.com/contentpilot/viral-formats-bot/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers wires the core services into HTTP endpoints
type Handlers struct {
	analyzer  *analysis.Service
	store     *formatstore.Store
	generator *generator.Generator
	polisher  *llm.Polisher // nil when polish is disabled
	learning  *learning.Service
}

// NewHandlers creates the handler set
func NewHandlers(analyzer *analysis.Service, store *formatstore.Store, gen *generator.Generator,
	polisher *llm.Polisher, learningService *learning.Service) *Handlers {
	return &Handlers{
		analyzer:  analyzer,
		store:     store,
		generator: gen,
		polisher:  polisher,
		learning:  learningService,
	}
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handlers) metrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.learning.GetMetrics()))
}

func (h *Handlers) trigger(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := h.learning.RunLearning(); err != nil {
			logrus.Errorf("Manual learning trigger failed: %v", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Learning run triggered"})
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var post models.ViralPost
	if !decodeBody(w, r, &post) {
		return
	}
	if !post.Platform.IsValid() {
		writeError(w, http.StatusBadRequest, "platform must be one of: linkedin, twitter")
		return
	}

	writeJSON(w, http.StatusOK, h.analyzer.Analyze(post))
}

type learnRequest struct {
	Post     models.ViralPost       `json:"post"`
	Analysis *models.AnalysisResult `json:"analysis,omitempty"`
}

func (h *Handlers) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Post.Platform.IsValid() {
		writeError(w, http.StatusBadRequest, "post.platform must be one of: linkedin, twitter")
		return
	}

	// Accept a precomputed analysis; otherwise analyze here
	result := req.Analysis
	if result == nil {
		computed := h.analyzer.Analyze(req.Post)
		result = &computed
	}

	writeJSON(w, http.StatusOK, h.store.Learn(req.Post, *result))
}

type batchLearnRequest struct {
	Posts []models.ViralPost `json:"posts"`
}

func (h *Handlers) learnBatch(w http.ResponseWriter, r *http.Request) {
	var req batchLearnRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Posts) == 0 {
		writeError(w, http.StatusBadRequest, "posts must not be empty")
		return
	}

	formats := make([]models.FormatPattern, 0, len(req.Posts))
	for _, post := range req.Posts {
		if !post.Platform.IsValid() {
			writeError(w, http.StatusBadRequest, "every post needs a valid platform")
			return
		}
		result := h.analyzer.Analyze(post)
		formats = append(formats, h.store.Learn(post, result))
	}

	writeJSON(w, http.StatusOK, formats)
}

type matchRequest struct {
	Topic       string                  `json:"topic"`
	Platform    models.Platform         `json:"platform"`
	Preferences models.MatchPreferences `json:"preferences"`
}

func (h *Handlers) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Platform.IsValid() {
		writeError(w, http.StatusBadRequest, "platform must be one of: linkedin, twitter")
		return
	}

	writeJSON(w, http.StatusOK, h.store.Match(req.Topic, req.Platform, req.Preferences))
}

func (h *Handlers) listFormats(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(r.URL.Query().Get("platform"))
	if platform != "" && !platform.IsValid() {
		writeError(w, http.StatusBadRequest, "platform must be one of: linkedin, twitter")
		return
	}

	formats := h.store.List(platform)
	if formats == nil {
		formats = []models.FormatPattern{}
	}
	writeJSON(w, http.StatusOK, formats)
}

func (h *Handlers) getFormat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	format, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "format not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, format)
}

func (h *Handlers) updateFormat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req formatstore.UpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	format, ok := h.store.Update(id, req)
	if !ok {
		writeError(w, http.StatusNotFound, "format not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, format)
}

func (h *Handlers) deleteFormat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.store.Delete(id) {
		writeError(w, http.StatusNotFound, "format not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// deleteFormats clears the whole store, or just the listed ids when a body
// with ids is provided.
func (h *Handlers) deleteFormats(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	if len(req.IDs) > 0 {
		deleted := h.store.BulkDelete(req.IDs)
		writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
		return
	}

	h.store.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"message": "format store cleared"})
}

func (h *Handlers) exportFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Export())
}

type importRequest struct {
	Formats  []models.FormatPattern `json:"formats"`
	Strategy models.MergeStrategy   `json:"strategy"`
}

func (h *Handlers) importFormats(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Strategy == "" {
		req.Strategy = models.MergeReplace
	}

	applied := h.store.Import(req.Formats, req.Strategy)
	writeJSON(w, http.StatusOK, map[string]int{"imported": applied})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(r.URL.Query().Get("platform"))
	if platform != "" && !platform.IsValid() {
		writeError(w, http.StatusBadRequest, "platform must be one of: linkedin, twitter")
		return
	}
	writeJSON(w, http.StatusOK, h.store.Stats(platform))
}

type draftRequest struct {
	Topic       string                  `json:"topic"`
	Platform    models.Platform         `json:"platform"`
	Preferences models.MatchPreferences `json:"preferences"`
	Polish      bool                    `json:"polish"`
}

type draftResponse struct {
	Draft models.Draft       `json:"draft"`
	Match models.MatchResult `json:"match"`
}

// createDraft matches a format for the topic and assembles a draft from it
func (h *Handlers) createDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if !req.Platform.IsValid() {
		writeError(w, http.StatusBadRequest, "platform must be one of: linkedin, twitter")
		return
	}

	match := h.store.Match(req.Topic, req.Platform, req.Preferences)
	draft := h.generator.Generate(match.Format, req.Topic)

	if req.Polish && h.polisher != nil {
		draft = h.polisher.Polish(r.Context(), draft)
	}

	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Match: match})
}

package progression

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

type rulesStore interface {
	GetProgressionRules(ctx context.Context) (Rules, error)
	SaveProgressionRules(ctx context.Context, rules Rules) error
}

type Handler struct {
	store rulesStore
}

func NewHandler(store rulesStore) *Handler {
	return &Handler{
		store: store,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/progression/rules", h.HandleGetRules).Methods("GET", "OPTIONS").Name("get-progression-rules")
	r.HandleFunc("/gymstats/progression/rules", h.HandleSaveRules).Methods("PUT", "OPTIONS").Name("save-progression-rules")
}

func (h *Handler) HandleGetRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.get_rules")
	defer span.End()

	rules, err := h.store.GetProgressionRules(ctx)
	if err != nil {
		log.Errorf("get progression rules: %s", err)
		http.Error(w, "get progression rules failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, rules, http.StatusOK)
}

func (h *Handler) HandleSaveRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.save_rules")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var rules Rules
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		log.Errorf("save progression rules, unmarshal json params: %s", err)
		http.Error(w, "save progression rules failed", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveProgressionRules(ctx, rules); err != nil {
		if errors.Is(err, ErrInvalidRules) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save progression rules: %s", err)
		http.Error(w, "save progression rules failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("progression rules saved: model [%s], enabled: %t", rules.SelectedModel, rules.Enabled)
	pkg.WriteJSON(w, rules, http.StatusOK)
}

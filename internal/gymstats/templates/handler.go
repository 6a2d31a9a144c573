package templates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=templates_test

type templatesRepo interface {
	ListTemplates(ctx context.Context) ([]TemplateInfo, error)
	SaveTemplate(ctx context.Context, template workout.Template) error
	ListPlans(ctx context.Context, params ListPlansParams) ([]Plan, error)
	AddPlan(ctx context.Context, plan NewPlan) (int, error)
}

type AddPlanResponse struct {
	ID int `json:"id"`
}

type Handler struct {
	repo   templatesRepo
	source Source
}

func NewHandler(repo templatesRepo, source Source) *Handler {
	return &Handler{
		repo:   repo,
		source: source,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/templates", h.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/gymstats/templates/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	r.HandleFunc("/gymstats/templates/{id}", h.HandleSave).Methods("PUT", "OPTIONS").Name("save-template")
	r.HandleFunc("/training-plans", h.HandleListPlans).Methods("GET", "OPTIONS").Name("list-training-plans")
	r.HandleFunc("/training-plans", h.HandleAddPlan).Methods("POST", "OPTIONS").Name("new-training-plan")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	infos, err := h.repo.ListTemplates(ctx)
	if err != nil {
		log.Errorf("list templates: %s", err)
		http.Error(w, "list templates failed", http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []TemplateInfo{}
	}
	pkg.WriteJSON(w, infos, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
	defer span.End()

	template, err := h.source.GetTemplateByID(ctx, mux.Vars(r)["id"])
	if errors.Is(err, workout.ErrTemplateNotFound) {
		http.Error(w, "workout template not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get template: %s", err)
		http.Error(w, "get template failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, template, http.StatusOK)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var template workout.Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Errorf("save template, unmarshal json params: %s", err)
		http.Error(w, "save template failed", http.StatusBadRequest)
		return
	}
	template.ID = mux.Vars(r)["id"]

	if strings.TrimSpace(template.Name) == "" {
		pkg.WriteJSON(w, workout.NewValidationError("name", "template name is required"), http.StatusBadRequest)
		return
	}
	if len(template.Exercises) == 0 {
		pkg.WriteJSON(w, workout.NewValidationError("exercises", "template needs at least one exercise"), http.StatusBadRequest)
		return
	}
	for _, slot := range template.Exercises {
		if strings.TrimSpace(slot.ExerciseID) == "" {
			pkg.WriteJSON(w, workout.NewValidationError("exerciseId", "exercise id is required"), http.StatusBadRequest)
			return
		}
	}

	if err := h.repo.SaveTemplate(ctx, template); err != nil {
		log.Errorf("save template [%s]: %s", template.ID, err)
		http.Error(w, "save template failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout template saved: %s (%d exercises)", template.ID, len(template.Exercises))
	pkg.WriteJSON(w, template, http.StatusOK)
}

func (h *Handler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training_plans.list")
	defer span.End()

	plans, err := h.repo.ListPlans(ctx, ListPlansParams{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Goal:   r.URL.Query().Get("goal"),
	})
	if err != nil {
		log.Errorf("list training plans: %s", err)
		http.Error(w, "list training plans failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, plans, http.StatusOK)
}

func (h *Handler) HandleAddPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training_plans.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan NewPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("new training plan, unmarshal json params: %s", err)
		http.Error(w, "add training plan failed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(plan.Name) == "" || plan.AuthorID <= 0 {
		http.Error(w, "error, plan name and author are required", http.StatusBadRequest)
		return
	}

	id, err := h.repo.AddPlan(ctx, plan)
	if err != nil {
		log.Errorf("add training plan: %s", err)
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "error, unknown author or workout", http.StatusBadRequest)
			return
		}
		http.Error(w, "add training plan failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new training plan added: %d", id)
	pkg.WriteJSON(w, AddPlanResponse{ID: id}, http.StatusCreated)
}

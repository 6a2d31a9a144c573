package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

// StartResponse carries either the live session or a resume offer.
type StartResponse struct {
	Session     *State       `json:"session,omitempty"`
	ResumeOffer *ResumeOffer `json:"resumeOffer,omitempty"`
}

type StartRequest struct {
	// Template is set when repeating a past workout instead of using the stored template.
	Template *workout.Template `json:"template,omitempty"`
}

type NavigationResponse struct {
	Moved   bool  `json:"moved"`
	Session State `json:"session"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{
		engine: engine,
	}
}

// SetupRoutes registers the session routes on r.
func (h *Handler) SetupRoutes(r *mux.Router) {
	base := "/gymstats/workouts/{workoutId}"
	r.HandleFunc(base+"/session", h.HandleStart).Methods("POST", "OPTIONS").Name("session-start")
	r.HandleFunc(base+"/session", h.HandleGet).Methods("GET", "OPTIONS").Name("session-get")
	r.HandleFunc(base+"/session/resume", h.HandleAcceptResume).Methods("POST", "OPTIONS").Name("session-resume")
	r.HandleFunc(base+"/session/reject", h.HandleRejectResume).Methods("POST", "OPTIONS").Name("session-reject")
	r.HandleFunc(base+"/autosave", h.HandleDiscardAutosave).Methods("DELETE", "OPTIONS").Name("autosave-discard")
	r.HandleFunc(base+"/session/sets", h.HandleRecordSet).Methods("POST", "OPTIONS").Name("session-record-set")
	r.HandleFunc(base+"/session/sets/{exerciseId}/{setIndex}", h.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("session-delete-set")
	r.HandleFunc(base+"/session/sets/{exerciseId}/{setIndex}/edit", h.HandleBeginEdit).Methods("POST", "OPTIONS").Name("session-begin-edit")
	r.HandleFunc(base+"/session/edit", h.HandleCommitEdit).Methods("PUT", "OPTIONS").Name("session-commit-edit")
	r.HandleFunc(base+"/session/edit", h.HandleCancelEdit).Methods("DELETE", "OPTIONS").Name("session-cancel-edit")
	r.HandleFunc(base+"/session/next", h.HandleNext).Methods("POST", "OPTIONS").Name("session-next")
	r.HandleFunc(base+"/session/previous", h.HandlePrevious).Methods("POST", "OPTIONS").Name("session-previous")
	r.HandleFunc(base+"/session/rest/skip", h.HandleSkipRest).Methods("POST", "OPTIONS").Name("session-skip-rest")
	r.HandleFunc(base+"/session/notes/{exerciseId}", h.HandleSetNote).Methods("PUT", "OPTIONS").Name("session-note")
	r.HandleFunc(base+"/session/suggestion", h.HandleSuggestion).Methods("GET", "OPTIONS").Name("session-suggestion")
	r.HandleFunc(base+"/session/suggestion/apply", h.HandleApplySuggestion).Methods("POST", "OPTIONS").Name("session-apply-suggestion")
	r.HandleFunc(base+"/session/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("session-finish")
	r.HandleFunc("/gymstats/exercises/{exerciseId}/suggestion", h.HandleExerciseSuggestion).Methods("GET", "OPTIONS").Name("exercise-suggestion")
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.start")
	defer span.End()

	req, ok := decodeOptional[StartRequest](w, r)
	if !ok {
		return
	}

	s, offer, err := h.engine.Start(ctx, mux.Vars(r)["workoutId"], req.Template)
	if err != nil {
		writeError(w, "start session", err)
		return
	}

	if offer != nil {
		pkg.WriteJSON(w, StartResponse{ResumeOffer: offer}, http.StatusOK)
		return
	}
	state := s.State()
	pkg.WriteJSON(w, StartResponse{Session: &state}, http.StatusOK)
}

func (h *Handler) HandleAcceptResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.resume")
	defer span.End()

	s, err := h.engine.AcceptResume(ctx, mux.Vars(r)["workoutId"])
	if err != nil {
		writeError(w, "accept resume", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleRejectResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.reject")
	defer span.End()

	req, ok := decodeOptional[StartRequest](w, r)
	if !ok {
		return
	}

	s, err := h.engine.RejectResume(ctx, mux.Vars(r)["workoutId"], req.Template)
	if err != nil {
		writeError(w, "reject resume", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleDiscardAutosave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.discard_autosave")
	defer span.End()

	if err := h.engine.DiscardAutosave(ctx, mux.Vars(r)["workoutId"]); err != nil {
		writeError(w, "discard autosave", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.get")
	defer span.End()

	s, err := h.engine.Get(mux.Vars(r)["workoutId"])
	if err != nil {
		writeError(w, "get session", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.record_set")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	values, ok := decodeRequired[workout.SetValues](w, r)
	if !ok {
		return
	}

	if err := s.RecordSet(ctx, values); err != nil {
		writeError(w, "record set", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusCreated)
}

func (h *Handler) HandleBeginEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.begin_edit")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	exerciseID, setIndex, ok := setParams(w, r)
	if !ok {
		return
	}

	if err := s.BeginEditSet(ctx, exerciseID, setIndex); err != nil {
		writeError(w, "begin set edit", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleCommitEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.commit_edit")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	values, ok := decodeRequired[workout.SetValues](w, r)
	if !ok {
		return
	}

	if err := s.CommitEditSet(ctx, values); err != nil {
		writeError(w, "commit set edit", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.cancel_edit")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.CancelEditSet(ctx); err != nil {
		writeError(w, "cancel set edit", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.delete_set")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	exerciseID, setIndex, ok := setParams(w, r)
	if !ok {
		return
	}

	if err := s.DeleteSet(ctx, exerciseID, setIndex); err != nil {
		writeError(w, "delete set", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.next")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	moved, err := s.NextExercise(ctx)
	if err != nil {
		writeError(w, "next exercise", err)
		return
	}
	pkg.WriteJSON(w, NavigationResponse{Moved: moved, Session: s.State()}, http.StatusOK)
}

func (h *Handler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.previous")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	moved, err := s.PreviousExercise(ctx)
	if err != nil {
		writeError(w, "previous exercise", err)
		return
	}
	pkg.WriteJSON(w, NavigationResponse{Moved: moved, Session: s.State()}, http.StatusOK)
}

func (h *Handler) HandleSkipRest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.skip_rest")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.SkipRest(ctx); err != nil {
		writeError(w, "skip rest", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleSetNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.set_note")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequired[NoteRequest](w, r)
	if !ok {
		return
	}

	if err := s.SetExerciseNote(ctx, mux.Vars(r)["exerciseId"], req.Note); err != nil {
		writeError(w, "set exercise note", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.suggestion")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	suggestion, err := s.Suggestion(ctx)
	if err != nil {
		writeError(w, "get suggestion", err)
		return
	}
	pkg.WriteJSON(w, suggestion, http.StatusOK)
}

func (h *Handler) HandleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.apply_suggestion")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.ApplySuggestion(ctx); err != nil {
		writeError(w, "apply suggestion", err)
		return
	}
	pkg.WriteJSON(w, s.State(), http.StatusOK)
}

func (h *Handler) HandleExerciseSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.exercise_suggestion")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	suggestion, err := h.engine.SuggestFor(ctx, exerciseID)
	if err != nil {
		writeError(w, "get exercise suggestion", err)
		return
	}
	pkg.WriteJSON(w, suggestion, http.StatusOK)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.finish")
	defer span.End()

	summary, err := h.engine.Finish(ctx, mux.Vars(r)["workoutId"])
	if err != nil {
		writeError(w, "finish session", err)
		return
	}
	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.engine.Get(mux.Vars(r)["workoutId"])
	if err != nil {
		writeError(w, "get session", err)
		return nil, false
	}
	return s, true
}

func setParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	vars := mux.Vars(r)
	setIndex, err := strconv.Atoi(vars["setIndex"])
	if err != nil {
		writeValidationError(w, workout.NewValidationError("setIndex", "set index must be a number"))
		return "", 0, false
	}
	return vars["exerciseId"], setIndex, true
}

func decodeRequired[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return v, false
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		log.Errorf("unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return v, false
	}
	return v, true
}

// decodeOptional accepts an empty body.
func decodeOptional[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if r.Body == nil || r.ContentLength == 0 {
		return v, true
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return v, false
	}
	return v, true
}

func writeValidationError(w http.ResponseWriter, verr *workout.ValidationError) {
	pkg.WriteJSON(w, verr, http.StatusBadRequest)
}

func writeError(w http.ResponseWriter, op string, err error) {
	var verr *workout.ValidationError
	var submitErr *SummarySubmitError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, workout.ErrTemplateNotFound):
		http.Error(w, "workout template not found", http.StatusNotFound)
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "no active session for workout", http.StatusNotFound)
	case errors.Is(err, ErrNoPendingResume):
		http.Error(w, "nothing to resume for workout", http.StatusNotFound)
	case errors.Is(err, ErrSessionFinished):
		http.Error(w, "session already finished", http.StatusConflict)
	case errors.Is(err, ErrSuggestionNotApplicable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &submitErr):
		log.Errorf("%s: %s", op, err)
		http.Error(w, "workout summary could not be saved, try again", http.StatusBadGateway)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}

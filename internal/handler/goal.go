package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/templui/goalflow/internal/ctxkeys"
	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/service"
	"github.com/templui/goalflow/internal/validation"
	"github.com/templui/goalflow/internal/week"
)

type GoalHandler struct {
	goalService   *service.GoalService
	exportService *service.ExportService
}

func NewGoalHandler(goalService *service.GoalService, exportService *service.ExportService) *GoalHandler {
	return &GoalHandler{
		goalService:   goalService,
		exportService: exportService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	weekKey := r.URL.Query().Get("weekKey")

	goals, err := h.goalService.Goals(r.Context(), user.ID, weekKey)
	if err != nil {
		fail(w, err, "Failed to load goals", "user_id", user.ID, "week_key", weekKey)
		return
	}

	writeOK(w, http.StatusOK, envelope{"data": goals})
}

type createGoalRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	WeekKey     string          `json:"weekKey"`
	DueDate     json.RawMessage `json:"dueDate"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, err, "Failed to create goal")
		return
	}

	var dueDate *time.Time
	if len(req.DueDate) > 0 {
		parsed, _, err := parseDueDate(req.DueDate)
		if err != nil {
			fail(w, err, "Failed to create goal")
			return
		}
		dueDate = parsed
	}

	goal, err := h.goalService.Create(r.Context(), user.ID, model.GoalDraft{
		Title:       req.Title,
		Description: req.Description,
		WeekKey:     req.WeekKey,
		DueDate:     dueDate,
	})
	if err != nil {
		fail(w, err, "Failed to create goal", "user_id", user.ID)
		return
	}

	writeOK(w, http.StatusCreated, envelope{"id": goal.ID, "data": goal})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	if err := validation.ValidateGoalID(goalID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var body map[string]json.RawMessage
	if err := decodeJSON(w, r, &body); err != nil {
		fail(w, err, "Failed to update goal")
		return
	}

	patch, err := decodeGoalPatch(body)
	if err != nil {
		fail(w, err, "Failed to update goal")
		return
	}

	_, err = h.goalService.Update(r.Context(), user.ID, goalID, patch)
	if err != nil {
		fail(w, err, "Failed to update goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), user.ID, goalID)
	if err != nil {
		fail(w, err, "Failed to delete goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

type moveGoalRequest struct {
	OverID string           `json:"overId"`
	Status model.GoalStatus `json:"status"`
}

func (h *GoalHandler) Move(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req moveGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, err, "Failed to move goal")
		return
	}

	goals, err := h.goalService.Move(r.Context(), user.ID, goalID, kanban.Target{GoalID: req.OverID, Status: req.Status})
	if err != nil {
		fail(w, err, "Failed to move goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	writeOK(w, http.StatusOK, envelope{"data": goals})
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	weekKey := r.URL.Query().Get("weekKey")
	if weekKey == "" {
		weekKey = week.Current()
	}

	export, err := h.exportService.Week(r.Context(), user.ID, weekKey)
	if err != nil {
		fail(w, err, "Failed to export goals", "user_id", user.ID, "week_key", weekKey)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=goals-%s.json", export.WeekKey))
	writeJSON(w, http.StatusOK, export)
}

func (h *GoalHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	weekKey := r.URL.Query().Get("weekKey")
	if weekKey == "" {
		weekKey = week.Current()
	}

	url, err := h.exportService.Archive(r.Context(), user.ID, weekKey)
	if err != nil {
		fail(w, err, "Failed to archive goals", "user_id", user.ID, "week_key", weekKey)
		return
	}

	writeOK(w, http.StatusOK, envelope{"url": url})
}

// decodeGoalPatch reads a PATCH body. Fields of the wrong JSON type are
// ignored, except status, order and dueDate which must be well formed.
func decodeGoalPatch(body map[string]json.RawMessage) (model.GoalPatch, error) {
	var patch model.GoalPatch

	if raw, ok := body["title"]; ok {
		var title string
		if json.Unmarshal(raw, &title) == nil {
			patch.Title = &title
		}
	}
	if raw, ok := body["description"]; ok {
		var description string
		if json.Unmarshal(raw, &description) == nil {
			patch.Description = &description
		}
	}
	if raw, ok := body["status"]; ok {
		var status model.GoalStatus
		if json.Unmarshal(raw, &status) == nil {
			patch.Status = &status
		}
	}
	if raw, ok := body["order"]; ok {
		var order float64
		if json.Unmarshal(raw, &order) == nil {
			if order != math.Trunc(order) || math.Abs(order) > math.MaxInt32 {
				return patch, &service.ValidationError{Reason: "order must be an integer"}
			}
			n := int(order)
			patch.Order = &n
		}
	}
	if raw, ok := body["dueDate"]; ok {
		dueDate, clearDate, err := parseDueDate(raw)
		if err != nil {
			return patch, err
		}
		patch.DueDate = dueDate
		patch.ClearDueDate = clearDate
	}

	return patch, nil
}

// parseDueDate interprets a dueDate value. null, "", false and 0 clear the
// date; a date string sets it.
func parseDueDate(raw json.RawMessage) (*time.Time, bool, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, false, &service.ValidationError{Reason: "invalid dueDate"}
	}

	switch v := v.(type) {
	case nil:
		return nil, true, nil
	case bool:
		if !v {
			return nil, true, nil
		}
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return nil, true, nil
		}
	case string:
		if v == "" {
			return nil, true, nil
		}
		t, err := week.ParseDate(v)
		if err == nil {
			return &t, false, nil
		}
	}
	return nil, false, &service.ValidationError{Reason: "invalid dueDate"}
}

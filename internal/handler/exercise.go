package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/auth"
	"github.com/musclemap/musclemap/internal/model"
	"github.com/musclemap/musclemap/internal/queue"
	"github.com/musclemap/musclemap/internal/repository"
)

// ExerciseHandler serves the exercise catalog. Reads are public; create
// requires any authenticated user, delete requires ownership or the
// exercise_delete scope. Events is optional; when set, create/delete
// emit catalog events on a best-effort basis.
type ExerciseHandler struct {
	Exercises    ExerciseStore
	Events       EventPublisher
	DefaultLimit int
}

func NewExerciseHandler(exercises ExerciseStore, events EventPublisher, defaultLimit int) *ExerciseHandler {
	return &ExerciseHandler{Exercises: exercises, Events: events, DefaultLimit: defaultLimit}
}

type exerciseReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Video       string   `json:"video"`
	MuscleIDs   []uint64 `json:"muscle_ids"`
	GroupIDs    []uint64 `json:"group_ids"`
}

// GetExercises handles GET /exercises with limit/offset pagination and
// an optional case-insensitive substring filter on name.
func (h *ExerciseHandler) GetExercises(c echo.Context) error {
	limit, offset := pageParams(c, h.DefaultLimit)
	exercises, err := h.Exercises.List(c.Request().Context(), limit, offset, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(exercises) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no results for this request"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": exercises})
}

// GetExerciseByID handles GET /exercises/:id.
func (h *ExerciseHandler) GetExerciseByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	e, err := h.Exercises.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exercise not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, e)
}

// GetExercisesByGroup handles GET /exercises/by_group_id/:id. 404 only
// when the group does not exist.
func (h *ExerciseHandler) GetExercisesByGroup(c echo.Context) error {
	return h.listLinked(c, h.Exercises.ListByGroup, "muscle group not found")
}

// GetExercisesByMuscle handles GET /exercises/by_muscle_id/:id. 404 only
// when the muscle does not exist.
func (h *ExerciseHandler) GetExercisesByMuscle(c echo.Context) error {
	return h.listLinked(c, h.Exercises.ListByMuscle, "muscle not found")
}

func (h *ExerciseHandler) listLinked(
	c echo.Context,
	list func(ctx context.Context, id uint64, limit, offset int) ([]model.Exercise, error),
	missing string,
) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	limit, offset := pageParams(c, h.DefaultLimit)
	exercises, err := list(c.Request().Context(), id, limit, offset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": missing})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": exercises})
}

// GetLatestExercises handles GET /exercises/latest. Ordering is by
// created_at ascending, oldest first; clients have come to rely on it.
func (h *ExerciseHandler) GetLatestExercises(c echo.Context) error {
	limit, offset := pageParams(c, h.DefaultLimit)
	exercises, err := h.Exercises.ListLatest(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(exercises) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no results for this request"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": exercises})
}

// GetPopularExercises handles GET /exercises/popular. Vote-based
// ordering is declared but not built yet; the contract is a 501, not a
// missing route.
func (h *ExerciseHandler) GetPopularExercises(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"error": "not implemented"})
}

// UpdateExercise handles PUT /exercises, a declared-but-unbuilt
// capability.
func (h *ExerciseHandler) UpdateExercise(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"error": "not implemented"})
}

// CreateExercise handles POST /exercises for any authenticated user.
// Every referenced muscle and group id must resolve; otherwise the whole
// create fails and no row is written.
func (h *ExerciseHandler) CreateExercise(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req exerciseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Description == "" || req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, description and image required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e := model.Exercise{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Video:       req.Video,
		CreatedBy:   uid,
		MuscleIDs:   req.MuscleIDs,
		GroupIDs:    req.GroupIDs,
	}
	if err := h.Exercises.Create(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown muscle or group id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	h.publish(ctx, "created", e)
	return c.JSON(http.StatusCreated, e)
}

// DeleteExercise handles DELETE /exercises/:id. The creator may always
// delete their own exercise; anyone else needs the exercise_delete
// scope. The ownership bypass runs before the permission table on
// purpose, keeping the table small and static.
func (h *ExerciseHandler) DeleteExercise(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Exercises.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exercise not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if e.CreatedBy != uid {
		if err := auth.Authorize(getRole(c), auth.ScopeExerciseDelete); err != nil {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	if err := h.Exercises.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exercise not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.publish(ctx, "deleted", e)
	return c.NoContent(http.StatusNoContent)
}

// publish emits a catalog event; failures are already logged by the
// publisher and never fail the request.
func (h *ExerciseHandler) publish(ctx context.Context, action string, e model.Exercise) {
	if h.Events == nil {
		return
	}
	_ = h.Events.PublishExerciseEvent(ctx, queue.ExerciseEvent{
		Action:     action,
		ExerciseID: e.ID,
		Name:       e.Name,
		UserID:     e.CreatedBy,
		MuscleIDs:  e.MuscleIDs,
		GroupIDs:   e.GroupIDs,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

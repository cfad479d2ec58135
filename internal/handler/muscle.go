package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/model"
	"github.com/musclemap/musclemap/internal/repository"
)

// MuscleHandler serves muscle groups and muscles. Reads are public;
// mutations sit behind scope middleware at the router.
//
// Empty-collection contract for this entity family: listing all groups
// or all muscles returns 404 when nothing exists yet. Listing muscles of
// an existing group returns 200 with an empty array; only an unknown
// group id is a 404.
type MuscleHandler struct {
	Groups       MuscleGroupStore
	Muscles      MuscleStore
	DefaultLimit int
}

func NewMuscleHandler(groups MuscleGroupStore, muscles MuscleStore, defaultLimit int) *MuscleHandler {
	return &MuscleHandler{Groups: groups, Muscles: muscles, DefaultLimit: defaultLimit}
}

type muscleGroupReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type muscleReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LargeImage  string `json:"large_image"`
	GroupID     uint64 `json:"group_id"`
}

// GetMuscleGroups handles GET /muscles/groups.
func (h *MuscleHandler) GetMuscleGroups(c echo.Context) error {
	groups, err := h.Groups.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(groups) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "there is no groups yet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": groups})
}

// GetMuscleGroupByID handles GET /muscles/groups/:id.
func (h *MuscleHandler) GetMuscleGroupByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Groups.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "muscle group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// CreateMuscleGroup handles POST /muscles/groups. Requires the
// muscle_group_post scope.
func (h *MuscleHandler) CreateMuscleGroup(c echo.Context) error {
	var req muscleGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and image required"})
	}
	g := model.MuscleGroup{Name: req.Name, Description: req.Description, Image: req.Image}
	if err := h.Groups.Create(c.Request().Context(), &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// GetMuscles handles GET /muscles with limit/offset pagination.
func (h *MuscleHandler) GetMuscles(c echo.Context) error {
	limit, offset := pageParams(c, h.DefaultLimit)
	muscles, err := h.Muscles.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(muscles) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "there is no muscles yet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": muscles})
}

// GetMuscleByID handles GET /muscles/:id.
func (h *MuscleHandler) GetMuscleByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Muscles.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "muscle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// GetMusclesByGroup handles GET /muscles/by_groups/:group_id. 404 only
// when the group does not exist.
func (h *MuscleHandler) GetMusclesByGroup(c echo.Context) error {
	groupID, err := parseID(c, "group_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	muscles, err := h.Muscles.ListByGroup(c.Request().Context(), groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "muscle group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": muscles})
}

// CreateMuscle handles POST /muscles. Requires the muscle_post scope.
// The referenced group must exist; an unresolvable group_id fails the
// whole request.
func (h *MuscleHandler) CreateMuscle(c echo.Context) error {
	var req muscleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Description == "" || req.GroupID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, description and group_id required"})
	}
	m := model.Muscle{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		GroupID:     req.GroupID,
	}
	if err := h.Muscles.Create(c.Request().Context(), &m); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown group_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// DeleteMuscle handles DELETE /muscles/:id. Requires the muscle_delete
// scope.
func (h *MuscleHandler) DeleteMuscle(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Muscles.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "muscle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

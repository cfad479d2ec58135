package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/model"
)

// ProgramHandler serves training programs. Unlike the muscle endpoints,
// listing programs returns 200 with an empty array when none exist.
type ProgramHandler struct {
	Programs ProgramStore
}

func NewProgramHandler(programs ProgramStore) *ProgramHandler {
	return &ProgramHandler{Programs: programs}
}

type programReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProgram handles POST /programs.
func (h *ProgramHandler) CreateProgram(c echo.Context) error {
	var req programReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	p := model.Program{Name: req.Name, Description: req.Description}
	if err := h.Programs.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// GetPrograms handles GET /programs.
func (h *ProgramHandler) GetPrograms(c echo.Context) error {
	programs, err := h.Programs.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": programs})
}

// GetProgramByID handles GET /programs/:id.
func (h *ProgramHandler) GetProgramByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Programs.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProgram handles DELETE /programs/:id.
func (h *ProgramHandler) DeleteProgram(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Programs.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

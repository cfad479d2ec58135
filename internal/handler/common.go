// Package handler implements the HTTP endpoints of the catalog API.
// Handlers depend on small store interfaces satisfied by the repository
// types, so tests can substitute in-memory fakes.
package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/middleware"
	"github.com/musclemap/musclemap/internal/model"
	"github.com/musclemap/musclemap/internal/queue"
)

// UserStore persists and looks up users.
type UserStore interface {
	Create(ctx context.Context, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// MuscleGroupStore persists and lists muscle groups.
type MuscleGroupStore interface {
	Create(ctx context.Context, g *model.MuscleGroup) error
	GetByID(ctx context.Context, id uint64) (model.MuscleGroup, error)
	ListAll(ctx context.Context) ([]model.MuscleGroup, error)
}

// MuscleStore persists and queries muscles.
type MuscleStore interface {
	Create(ctx context.Context, m *model.Muscle) error
	GetByID(ctx context.Context, id uint64) (model.Muscle, error)
	List(ctx context.Context, limit, offset int) ([]model.Muscle, error)
	ListByGroup(ctx context.Context, groupID uint64) ([]model.Muscle, error)
	Delete(ctx context.Context, id uint64) error
}

// ExerciseStore persists and queries exercises together with their
// muscle/group associations.
type ExerciseStore interface {
	Create(ctx context.Context, e *model.Exercise) error
	GetByID(ctx context.Context, id uint64) (model.Exercise, error)
	List(ctx context.Context, limit, offset int, search string) ([]model.Exercise, error)
	ListByGroup(ctx context.Context, groupID uint64, limit, offset int) ([]model.Exercise, error)
	ListByMuscle(ctx context.Context, muscleID uint64, limit, offset int) ([]model.Exercise, error)
	ListLatest(ctx context.Context, limit, offset int) ([]model.Exercise, error)
	Delete(ctx context.Context, id uint64) error
}

// ProgramStore persists and lists training programs.
type ProgramStore interface {
	Create(ctx context.Context, p *model.Program) error
	ListAll(ctx context.Context) ([]model.Program, error)
	GetByID(ctx context.Context, id uint64) (model.Program, error)
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher forwards catalog change events to the broker. A nil
// publisher disables event emission.
type EventPublisher interface {
	PublishExerciseEvent(ctx context.Context, ev queue.ExerciseEvent) error
}

const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user id stored by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageParams reads limit/offset query parameters, falling back to the
// configured default limit and clamping negatives.
func pageParams(c echo.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

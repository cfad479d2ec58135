// Package router wires the catalog endpoints to their handlers and
// middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/auth"
	"github.com/musclemap/musclemap/internal/handler"
	"github.com/musclemap/musclemap/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies. Currently
// only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login. Both are
// unauthenticated; the rate limiter (nil to disable) shields them from
// credential stuffing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/users")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/new", a.Register)
	g.POST("/login", a.Login)
}

// RegisterCatalog registers the public reads and the gated mutations.
// The cache middleware (nil to disable) applies only to public reads;
// mutation routes go through JWT auth and, where required, a scope
// check. There is deliberately no DELETE route for muscle groups.
func RegisterCatalog(e *echo.Echo, m *handler.MuscleHandler, x *handler.ExerciseHandler, p *handler.ProgramHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	public := e.Group("")
	if cache != nil {
		public.Use(cache)
	}

	public.GET("/muscles/groups", m.GetMuscleGroups)
	public.GET("/muscles/groups/:id", m.GetMuscleGroupByID)
	public.GET("/muscles", m.GetMuscles)
	public.GET("/muscles/:id", m.GetMuscleByID)
	public.GET("/muscles/by_groups/:group_id", m.GetMusclesByGroup)

	public.GET("/exercises", x.GetExercises)
	public.GET("/exercises/latest", x.GetLatestExercises)
	public.GET("/exercises/popular", x.GetPopularExercises)
	public.GET("/exercises/by_group_id/:id", x.GetExercisesByGroup)
	public.GET("/exercises/by_muscle_id/:id", x.GetExercisesByMuscle)
	public.GET("/exercises/:id", x.GetExerciseByID)

	public.GET("/programs", p.GetPrograms)
	public.GET("/programs/:id", p.GetProgramByID)
	e.POST("/programs", p.CreateProgram)
	e.DELETE("/programs/:id", p.DeleteProgram)

	jwt := middleware.JWTAuth(jwtSecret)
	e.POST("/muscles/groups", m.CreateMuscleGroup, jwt, middleware.RequireScope(auth.ScopeMuscleGroupPost))
	e.POST("/muscles", m.CreateMuscle, jwt, middleware.RequireScope(auth.ScopeMusclePost))
	e.DELETE("/muscles/:id", m.DeleteMuscle, jwt, middleware.RequireScope(auth.ScopeMuscleDelete))

	e.POST("/exercises", x.CreateExercise, jwt)
	e.PUT("/exercises", x.UpdateExercise, jwt)
	e.DELETE("/exercises/:id", x.DeleteExercise, jwt)
}

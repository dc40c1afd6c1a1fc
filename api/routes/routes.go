package routes

import (
	"time"

	"planhub/api/handler"
	"planhub/api/middleware"
	"planhub/internal/entity"
	"planhub/internal/repository"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo *echo.Echo

	Auth          *handler.AuthHandler
	Profiles      *handler.ProfileHandler
	Organizations *handler.OrganizationHandler
	Projects      *handler.ProjectHandler
	Sprints       *handler.SprintHandler
	Tasks         *handler.TaskHandler

	AuthMiddleware middleware.AuthMiddleware
	Users          repository.UserRepository

	AuthRate   *middleware.RateLimiter
	SignInRate *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	orgHandler *handler.OrganizationHandler,
	projectHandler *handler.ProjectHandler,
	sprintHandler *handler.SprintHandler,
	taskHandler *handler.TaskHandler,
	authMiddleware middleware.AuthMiddleware,
	users repository.UserRepository,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Profiles:       profileHandler,
		Organizations:  orgHandler,
		Projects:       projectHandler,
		Sprints:        sprintHandler,
		Tasks:          taskHandler,
		AuthMiddleware: authMiddleware,
		Users:          users,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		SignInRate:     middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth

	e.POST("/auth/sign-up", r.Auth.SignUp, r.AuthRate.Middleware())
	e.POST("/auth/sign-in", r.Auth.SignIn, r.SignInRate.Middleware())
	e.POST("/auth/sign-out", r.Auth.SignOut, requireAuth)
	e.POST("/auth/sign-out-all", r.Auth.SignOutAll, requireAuth)
	e.POST("/auth/verify-email", r.Auth.VerifyEmail, r.AuthRate.Middleware())
	e.POST("/auth/forgot-password", r.Auth.ForgotPassword, r.SignInRate.Middleware())
	e.POST("/auth/reset-password", r.Auth.ResetPassword, r.AuthRate.Middleware())

	api := e.Group("/api", requireAuth)
	api.GET("/me", r.Auth.Me)

	api.GET("/profile", r.Profiles.Get)
	api.PUT("/profile", r.Profiles.Update)

	api.POST("/organizations", r.Organizations.Create)
	api.GET("/organizations", r.Organizations.List)
	api.GET("/organizations/:id", r.Organizations.Get)
	api.PUT("/organizations/:id", r.Organizations.Update)
	api.DELETE("/organizations/:id", r.Organizations.Delete)
	api.GET("/organizations/:id/members", r.Organizations.ListMembers)
	api.POST("/organizations/:id/members", r.Organizations.AddMember)
	api.DELETE("/organizations/:id/members/:userId", r.Organizations.RemoveMember)

	api.POST("/organizations/:id/projects", r.Projects.Create)
	api.GET("/organizations/:id/projects", r.Projects.ListByOrganization)
	api.GET("/projects/:id", r.Projects.Get)
	api.PUT("/projects/:id", r.Projects.Update)
	api.DELETE("/projects/:id", r.Projects.Delete)

	api.POST("/projects/:id/sprints", r.Sprints.Create)
	api.GET("/projects/:id/sprints", r.Sprints.ListByProject)
	api.GET("/sprints/:id", r.Sprints.Get)
	api.PUT("/sprints/:id", r.Sprints.Update)
	api.DELETE("/sprints/:id", r.Sprints.Delete)

	api.POST("/projects/:id/tasks", r.Tasks.Create)
	api.GET("/projects/:id/tasks", r.Tasks.ListByProject)
	api.GET("/tasks/:id", r.Tasks.Get)
	api.PUT("/tasks/:id", r.Tasks.Update)
	api.DELETE("/tasks/:id", r.Tasks.Delete)

	admin := e.Group("/admin", requireAuth, middleware.RequireRole(r.Users, entity.UserRoleAdmin))
	admin.GET("/users", r.Auth.AdminListUsers)
	admin.POST("/users/:id/revoke-sessions", r.Auth.AdminRevokeUserSessions)
}

package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"planhub/api/handler"
	apiMiddleware "planhub/api/middleware"
	"planhub/api/routes"
	"planhub/config"
	"planhub/internal/auth"
	"planhub/internal/repository"
	"planhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("database migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	emailSender := service.NewResendEmailSender(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("RESEND_FROM_EMAIL"),
		os.Getenv("APP_BASE_URL"),
	)

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		verificationRepo,
		activityRepo,
		emailSender,
		service.BcryptPasswordHasher{},
		service.RealClock{},
		service.AuthConfig{
			SessionTTL:           7 * 24 * time.Hour,
			VerificationTokenTTL: 24 * time.Hour,
			ResetTokenTTL:        time.Hour,
		},
	)

	authHandler := handler.NewAuthHandler(authService, profileRepo, validate)
	authHandler.Cookie.Domain = os.Getenv("COOKIE_DOMAIN")
	authHandler.Cookie.Secure = os.Getenv("COOKIE_SECURE") != "false"

	profileHandler := handler.NewProfileHandler(profileRepo, validate)
	orgHandler := handler.NewOrganizationHandler(orgRepo, userRepo, activityRepo, validate)
	projectHandler := handler.NewProjectHandler(projectRepo, orgRepo, activityRepo, validate)
	sprintHandler := handler.NewSprintHandler(sprintRepo, projectRepo, orgRepo, validate)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo, orgRepo, activityRepo, validate)

	resolver := auth.NewStoreResolver(sessionRepo, nil, logger)
	authMiddleware := apiMiddleware.AuthMiddleware{Resolver: resolver, Log: logger}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	protectedPrefixes := []string{"/user", "/admin", "/dev"}
	if raw := os.Getenv("PROTECTED_PREFIXES"); raw != "" {
		protectedPrefixes = strings.Split(raw, ",")
	}
	edgeGate := apiMiddleware.NewEdgeGate(protectedPrefixes, "/auth/sign-in")
	app.Pre(edgeGate.Middleware())

	router := routes.NewRouter(
		app,
		authHandler,
		profileHandler,
		orgHandler,
		projectHandler,
		sprintHandler,
		taskHandler,
		authMiddleware,
		userRepo,
	)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

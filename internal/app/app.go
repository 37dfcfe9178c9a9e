// Package app wires the store, services and HTTP handlers into a server.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/mindbuilders/dtmms/api/swagger"
	"github.com/mindbuilders/dtmms/internal/handler"
	"github.com/mindbuilders/dtmms/internal/middleware"
	"github.com/mindbuilders/dtmms/internal/repository"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/internal/store"
	"github.com/mindbuilders/dtmms/pkg/config"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/logger"
	corsmiddleware "github.com/mindbuilders/dtmms/pkg/middleware/cors"
	reqidmiddleware "github.com/mindbuilders/dtmms/pkg/middleware/requestid"
	"github.com/mindbuilders/dtmms/pkg/password"
	"github.com/mindbuilders/dtmms/pkg/response"
)

// Services is the service layer over one store.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Training   *service.TrainingService
	Attendance *service.AttendanceService
	Mentorship *service.MentorshipService
	Messaging  *service.MessagingService
	Stats      *service.StatsService
	Reports    *service.ReportService
	Exports    *service.ExportService
}

// NewServices builds every service on repositories over st.
func NewServices(st *store.Store, passwords *password.Hasher, auth config.AuthConfig, logr *zap.Logger) *Services {
	if logr == nil {
		logr = zap.NewNop()
	}
	validate := validator.New()
	repos := repository.New(st)

	reports := service.NewReportService(service.ReportServiceParams{
		Programmes:  repos.Programmes,
		Sessions:    repos.Sessions,
		Attendance:  repos.Attendance,
		Enrollments: repos.Enrollments,
		Evaluations: repos.Evaluations,
		Users:       repos.Users,
		Logger:      logr.Named("reports"),
	})

	return &Services{
		Auth: service.NewAuthService(repos.Users, st, passwords, validate, logr.Named("auth"), service.AuthConfig{
			AccessTokenSecret: auth.JWTSecret,
			AccessTokenExpiry: auth.JWTExpiration,
			Issuer:            auth.JWTIssuer,
		}),
		Users:      service.NewUserService(repos.Users, passwords, validate, logr.Named("users")),
		Training:   service.NewTrainingService(repos.Programmes, repos.Sessions, repos.Materials, repos.Enrollments, repos.Users, validate, logr.Named("training")),
		Attendance: service.NewAttendanceService(repos.Attendance, repos.Sessions, validate, logr.Named("attendance")),
		Mentorship: service.NewMentorshipService(repos.Mentorships, repos.MentorshipNotes, repos.Evaluations, repos.Programmes, repos.Users, validate, logr.Named("mentorship")),
		Messaging:  service.NewMessagingService(repos.Messages, repos.Notifications, repos.Users, validate, logr.Named("messaging")),
		Stats: service.NewStatsService(service.StatsServiceParams{
			Users:       repos.Users,
			Programmes:  repos.Programmes,
			Sessions:    repos.Sessions,
			Enrollments: repos.Enrollments,
			Attendance:  repos.Attendance,
			Mentorships: repos.Mentorships,
			Notes:       repos.MentorshipNotes,
			Evaluations: repos.Evaluations,
			Materials:   repos.Materials,
			Logger:      logr.Named("stats"),
			Now:         st.Now,
		}),
		Reports: reports,
		Exports: service.NewExportService(reports, logr.Named("export")),
	}
}

// NewRouter builds the gin engine: probes, metrics, docs outside
// production, and the API under cfg.APIPrefix.
func NewRouter(cfg *config.Config, st *store.Store, svc *Services, metrics *service.MetricsService, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, st, logr)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:       handler.NewAuthHandler(svc.Auth),
		Users:      handler.NewUserHandler(svc.Users),
		Training:   handler.NewTrainingHandler(svc.Training),
		Enrollment: handler.NewEnrollmentHandler(svc.Training),
		Attendance: handler.NewAttendanceHandler(svc.Attendance),
		Mentorship: handler.NewMentorshipHandler(svc.Mentorship),
		Messages:   handler.NewMessageHandler(svc.Messaging),
		Dashboard:  handler.NewDashboardHandler(svc.Stats),
		Reports:    handler.NewReportHandler(svc.Reports, svc.Exports),
		Admin:      handler.NewAdminHandler(st, logr.Named("admin")),
		Metrics:    metricsHandler,
	}, svc.Auth)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})
	return r
}

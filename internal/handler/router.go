package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/middleware"
	"github.com/mindbuilders/dtmms/internal/models"
)

// Handlers groups every endpoint set mounted under the API prefix.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Training   *TrainingHandler
	Enrollment *EnrollmentHandler
	Attendance *AttendanceHandler
	Mentorship *MentorshipHandler
	Messages   *MessageHandler
	Dashboard  *DashboardHandler
	Reports    *ReportHandler
	Admin      *AdminHandler
	Metrics    *MetricsHandler
}

const self = middleware.Self

var (
	admin   = string(models.RoleAdmin)
	trainer = string(models.RoleTrainer)
	mentor  = string(models.RoleMentor)
)

// RegisterRoutes mounts the API on api. Every route except login requires a
// bearer token.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, tokens middleware.TokenValidator) {
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)

	users := secured.Group("/users")
	users.GET("", middleware.RBAC(admin), h.Users.List)
	users.POST("", middleware.RBAC(admin), h.Users.Create)
	users.GET("/:id", middleware.RBAC(admin, self), h.Users.Get)
	users.PATCH("/:id", middleware.RBAC(admin), h.Users.Update)
	users.DELETE("/:id", middleware.RBAC(admin), h.Users.Delete)

	programmes := secured.Group("/programmes")
	programmes.GET("", h.Training.ListProgrammes)
	programmes.POST("", middleware.RBAC(admin, trainer), h.Training.CreateProgramme)
	programmes.GET("/:id", h.Training.GetProgramme)
	programmes.PATCH("/:id", middleware.RBAC(admin, trainer), h.Training.UpdateProgramme)
	programmes.DELETE("/:id", middleware.RBAC(admin), h.Training.DeleteProgramme)
	programmes.GET("/:id/sessions", h.Training.ProgrammeSessions)
	programmes.GET("/:id/materials", h.Training.ProgrammeMaterials)
	programmes.GET("/:id/enrollments", middleware.RBAC(admin, trainer, mentor), h.Enrollment.ByProgramme)
	programmes.GET("/:id/evaluations", middleware.RBAC(admin, trainer, mentor), h.Mentorship.ProgrammeEvaluations)

	sessions := secured.Group("/sessions")
	sessions.GET("", h.Training.ListSessions)
	sessions.POST("", middleware.RBAC(admin, trainer), h.Training.CreateSession)
	sessions.GET("/:id", h.Training.GetSession)
	sessions.PATCH("/:id", middleware.RBAC(admin, trainer), h.Training.UpdateSession)
	sessions.DELETE("/:id", middleware.RBAC(admin, trainer), h.Training.DeleteSession)
	sessions.GET("/:id/attendance", middleware.RBAC(admin, trainer), h.Attendance.BySession)
	sessions.PUT("/:id/attendance", middleware.RBAC(admin, trainer), h.Attendance.MarkSession)

	secured.POST("/enrollments", middleware.RBAC(admin, trainer), h.Enrollment.Enroll)
	secured.PATCH("/enrollments/:id", middleware.RBAC(admin, trainer), h.Enrollment.Update)

	secured.POST("/attendance", middleware.RBAC(admin, trainer), h.Attendance.Create)
	secured.PATCH("/attendance/:id", middleware.RBAC(admin, trainer), h.Attendance.Update)

	mentorships := secured.Group("/mentorships")
	mentorships.GET("", middleware.RBAC(admin, trainer, mentor), h.Mentorship.List)
	mentorships.POST("", middleware.RBAC(admin), h.Mentorship.Assign)
	mentorships.PATCH("/:id", middleware.RBAC(admin, mentor), h.Mentorship.Update)
	mentorships.GET("/:id/notes", middleware.RBAC(admin, mentor), h.Mentorship.Notes)
	mentorships.POST("/:id/notes", middleware.RBAC(mentor), h.Mentorship.AddNote)

	secured.POST("/evaluations", middleware.RBAC(trainer, mentor), h.Mentorship.Evaluate)
	secured.PATCH("/evaluations/:id", middleware.RBAC(admin, trainer, mentor), h.Mentorship.UpdateEvaluation)

	secured.POST("/materials", middleware.RBAC(admin, trainer), h.Training.CreateMaterial)
	secured.PATCH("/materials/:id", middleware.RBAC(admin, trainer), h.Training.UpdateMaterial)
	secured.DELETE("/materials/:id", middleware.RBAC(admin, trainer), h.Training.DeleteMaterial)

	trainees := secured.Group("/trainees/:id", middleware.RBAC(admin, trainer, mentor, self))
	trainees.GET("/enrollments", h.Enrollment.ByTrainee)
	trainees.GET("/attendance", h.Attendance.ByTrainee)
	trainees.GET("/evaluations", h.Mentorship.TraineeEvaluations)
	trainees.GET("/mentorships", h.Mentorship.ByTrainee)
	secured.GET("/mentors/:id/mentorships", middleware.RBAC(admin, self), h.Mentorship.ByMentor)

	messages := secured.Group("/messages")
	messages.GET("/inbox", h.Messages.Inbox)
	messages.GET("/sent", h.Messages.Sent)
	messages.POST("", h.Messages.Send)
	messages.POST("/:id/reply", h.Messages.Reply)
	messages.POST("/:id/read", h.Messages.MarkRead)

	secured.GET("/notifications", h.Messages.Notifications)
	secured.POST("/notifications", middleware.RBAC(admin, trainer, mentor), h.Messages.Notify)
	secured.POST("/notifications/:id/read", h.Messages.MarkNotificationRead)

	dashboard := secured.Group("/dashboard")
	dashboard.GET("", h.Dashboard.Mine)
	dashboard.GET("/admin", middleware.RBAC(admin), h.Dashboard.Admin)
	dashboard.GET("/trainer/:id", middleware.RBAC(admin, self), h.Dashboard.Trainer)
	dashboard.GET("/mentor/:id", middleware.RBAC(admin, self), h.Dashboard.Mentor)
	dashboard.GET("/trainee/:id", middleware.RBAC(admin, self), h.Dashboard.Trainee)

	reports := secured.Group("/reports")
	reports.GET("/attendance/:programmeId", middleware.RBAC(admin, trainer), h.Reports.Attendance)
	reports.GET("/performance/:traineeId", middleware.RBAC(admin, trainer, mentor), h.Reports.Performance)

	secured.POST("/admin/reset", middleware.RBAC(admin), h.Admin.Reset)
	secured.GET("/admin/metrics", middleware.RBAC(admin), h.Metrics.Snapshot)
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	"github.com/BruksfildServices01/glamconnect/internal/config"
	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/handlers"
	"github.com/BruksfildServices01/glamconnect/internal/infra/sms"
	"github.com/BruksfildServices01/glamconnect/internal/middleware"
	"github.com/BruksfildServices01/glamconnect/internal/platform/metrics"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
	ucAccount "github.com/BruksfildServices01/glamconnect/internal/usecase/account"
	ucBooking "github.com/BruksfildServices01/glamconnect/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/glamconnect/internal/usecase/catalog"
)

// Deps are the singletons built by main (or by tests with in-memory stores).
type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Clock   *timezone.Clock

	Users    account.UserRepository
	Admins   account.AdminRepository
	Services catalog.Repository
	Bookings booking.Repository
	Sessions session.Store

	Mailer   account.Mailer
	SMS      sms.Notifier
	Identity account.IdentityProvider
	// Images is nil when object storage is not configured.
	Images    catalog.ImageStore
	Audit     *audit.Dispatcher
	AuditLogs handlers.AuditReader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(),
		middleware.SessionMiddleware(d.Sessions, log),
	)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	hasher := account.NewHasher(cfg.BcryptCost)
	settings := ucAccount.Settings{
		VerifyTokenTTL: cfg.VerifyTokenTTL,
		ResetTokenTTL:  cfg.ResetTokenTTL,
		SessionTTL:     cfg.SessionTTL,
		PublicBaseURL:  cfg.PublicBaseURL,
		ExposeTokens:   cfg.ExposeVerificationTokens,
	}

	accountHandler := handlers.NewAccountHandler(
		ucAccount.NewRegister(d.Users, hasher, d.Mailer, d.Clock, settings, log),
		ucAccount.NewVerifyEmail(d.Users, d.Clock),
		ucAccount.NewLogin(d.Users, hasher, d.Sessions, d.Clock, settings),
		ucAccount.NewAdminLogin(d.Admins, hasher, d.Sessions, d.Clock, settings),
		ucAccount.NewRequestPasswordReset(d.Users, d.Mailer, d.Clock, settings, log),
		ucAccount.NewResetPassword(d.Users, hasher, d.Clock),
		ucAccount.NewGetUserByEmail(d.Users),
		ucAccount.NewExternalIdentity(d.Users, d.Identity),
		log,
	)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	completeElapsed := ucBooking.NewCompleteElapsed(d.Bookings, d.Clock, log)

	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewCreateBooking(d.Bookings, d.Users, d.SMS, d.Audit, log),
		ucBooking.NewListBookings(d.Bookings, completeElapsed, d.Clock, log),
		ucBooking.NewUpdateBooking(d.Bookings, d.Audit),
		ucBooking.NewDeleteBooking(d.Bookings, d.Audit),
		ucBooking.NewAdminUpdateBooking(d.Bookings, d.Audit),
		ucBooking.NewAdminDeleteBooking(d.Bookings, d.Audit),
		log,
	)

	// ======================================================
	// USE CASES: SERVICE CATALOG
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(
		ucCatalog.NewListServices(d.Services),
		ucCatalog.NewCreateService(d.Services, d.Audit),
		ucCatalog.NewUpdateService(d.Services, d.Audit),
		ucCatalog.NewDeleteService(d.Services, d.Audit),
		ucCatalog.NewUploadServiceImage(d.Services, d.Images, d.Audit),
		log,
	)

	// ======================================================
	// ACTION TABLE
	// ======================================================
	dispatcher := handlers.NewDispatcher(d.Metrics, log)

	accountHandler.Routes(dispatcher)
	bookingHandler.Routes(dispatcher)
	catalogHandler.Routes(dispatcher)
	if d.AuditLogs != nil {
		handlers.NewAuditLogsHandler(d.AuditLogs, log).Routes(dispatcher)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.POST("/api", dispatcher.HandlePost)
	r.POST("/api.php", dispatcher.HandlePost)
	r.GET("/api", dispatcher.HandleGet)
}

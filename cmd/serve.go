package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	authclient "github.com/vibast-solutions/lib-go-auth/client"
	authmiddleware "github.com/vibast-solutions/lib-go-auth/middleware"
	authlibservice "github.com/vibast-solutions/lib-go-auth/service"
	"github.com/vibast-solutions/ms-go-club/app/access"
	"github.com/vibast-solutions/ms-go-club/app/controller"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	grpcserver "github.com/vibast-solutions/ms-go-club/app/grpc"
	"github.com/vibast-solutions/ms-go-club/app/middleware"
	"github.com/vibast-solutions/ms-go-club/app/repository"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/token"
	"github.com/vibast-solutions/ms-go-club/config"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start the member-facing HTTP (Echo) server and the internal gRPC server.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type sessionResolver interface {
	Authenticate(ctx context.Context, tokenStr string) (*entity.User, error)
}

type httpHandlers struct {
	auth          *controller.AuthController
	dashboard     *controller.DashboardController
	notifications *controller.NotificationController
	membership    *controller.MembershipController
	bookings      *controller.BookingController
	admin         *controller.AdminController
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	db, closeDB := mustOpenDatabase(cfg)
	defer closeDB()
	mustMigrateIfEnabled(context.Background(), cfg, db)

	publisher, closePublisher := mustCreatePublisher(cfg)
	defer closePublisher()

	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewMemberSubscriptionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	activityLogger := service.NewActivityLogger(repository.NewActivityLogRepository(db))
	authService := service.NewAuthService(userRepo, token.NewMaker(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), activityLogger)
	notificationService := service.NewNotificationService(notificationRepo)
	membershipService := service.NewMembershipService(subscriptionRepo, userRepo, activityLogger)
	bookingService := service.NewBookingService(bookingRepo, settingRepo, activityLogger)
	settingService := service.NewSettingService(settingRepo, activityLogger)
	expiryNotifier := service.NewExpiryNotifier(subscriptionRepo, userRepo, notificationRepo, publisher, cfg.App.Location)

	handlers := httpHandlers{
		auth: controller.NewAuthController(authService, controller.SessionCookie{
			Name:   cfg.Auth.SessionCookieName,
			Secure: cfg.Auth.SecureCookie,
		}),
		dashboard:     controller.NewDashboardController(notificationService, membershipService),
		notifications: controller.NewNotificationController(notificationService),
		membership:    controller.NewMembershipController(membershipService),
		bookings:      controller.NewBookingController(bookingService),
		admin:         controller.NewAdminController(activityLogger, settingService, expiryNotifier),
	}

	authGRPCClient, err := authclient.NewGRPCClientFromAddr(context.Background(), cfg.InternalEndpoints.AuthGRPCAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize auth gRPC client")
	}
	defer authGRPCClient.Close()
	internalAuthService := authlibservice.NewInternalAuthService(authGRPCClient)
	grpcInternalAuthMiddleware := authmiddleware.NewGRPCInternalAuthMiddleware(internalAuthService)

	e := setupHTTPServer(cfg, handlers, authService)
	grpcSrv, lis := setupGRPCServer(cfg, grpcserver.NewServer(expiryNotifier), grpcInternalAuthMiddleware, cfg.App.ServiceName)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()

	logrus.Info("Server stopped")
}

func setupHTTPServer(cfg *config.Config, h httpHandlers, sessions sessionResolver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			if user := middleware.CurrentUser(c); user != nil {
				fields["user_id"] = user.ID
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))
	e.Use(middleware.Authenticate(sessions, cfg.Auth.SessionCookieName))

	registerRoutes(e, h, middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerMinute))
	return e
}

func registerRoutes(e *echo.Echo, h httpHandlers, loginLimiter *middleware.IPRateLimiter) {
	anyRole := middleware.RequireRoles(access.Require(entity.Roles...))
	courtUsers := middleware.RequireRoles(access.Require(entity.RoleAdmin, entity.RoleStaff, entity.RoleMember, entity.RoleNonMember))
	staffLevel := middleware.RequireRoles(access.Require(entity.RoleAdmin, entity.RoleStaff))
	adminOnly := middleware.RequireRoles(access.Require(entity.RoleAdmin))

	e.GET("/health", controller.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET(middleware.LoginPath, h.auth.LoginPage)
	e.POST(middleware.LoginPath, h.auth.Login, loginLimiter.Middleware())
	e.POST("/logout", h.auth.Logout)

	e.GET("/dashboard", h.dashboard.Show, anyRole)
	e.GET("/membership", h.membership.Show, anyRole)

	notifications := e.Group("/notifications", anyRole)
	notifications.GET("", h.notifications.Index)
	notifications.POST("/read-all", h.notifications.MarkAllRead)
	notifications.POST("/:id/read", h.notifications.MarkRead)

	bookings := e.Group("/bookings", courtUsers)
	bookings.GET("", h.bookings.Index)
	bookings.POST("", h.bookings.Store)
	bookings.POST("/:id/cancel", h.bookings.Cancel)

	staff := e.Group("/staff", staffLevel)
	staff.GET("/subscriptions", h.membership.StaffIndex)
	staff.POST("/subscriptions", h.membership.Store)
	staff.POST("/subscriptions/:id/verify-payment", h.membership.VerifyPayment)

	admin := e.Group("/admin", adminOnly)
	admin.GET("/activity-logs", h.admin.ActivityLogs)
	admin.GET("/settings", h.admin.Settings)
	admin.PUT("/settings/:key", h.admin.UpdateSetting)
	admin.POST("/jobs/membership-expiry", h.admin.RunMembershipExpiry)
}

func setupGRPCServer(
	cfg *config.Config,
	clubServer grpcserver.ClubInternalServer,
	internalAuthMiddleware *authmiddleware.GRPCInternalAuthMiddleware,
	appServiceName string,
) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoveryInterceptor(),
			grpcserver.RequestIDInterceptor(),
			grpcserver.LoggingInterceptor(),
			internalAuthMiddleware.UnaryRequireInternalAccess(appServiceName),
		),
	)
	grpcserver.RegisterClubInternalServer(grpcSrv, clubServer)

	return grpcSrv, lis
}

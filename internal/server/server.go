package server

import (
	"context"
	"net/http"

	"bookinghub/internal/config"
	"bookinghub/internal/domain/auth"
	"bookinghub/internal/domain/booking"
	"bookinghub/internal/domain/facility"
	"bookinghub/internal/domain/notification"
	"bookinghub/internal/middleware"
	"bookinghub/internal/pkg/jwt"
	"bookinghub/internal/pkg/metrics"
	"bookinghub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Models lists every table the API needs, in migration order.
func Models() []any {
	return []any{
		&auth.User{},
		&facility.Facility{},
		&facility.Resource{},
		&booking.Booking{},
		&notification.Notification{},
	}
}

type Server struct {
	Router  *gin.Engine
	Hub     *notification.Hub
	Metrics *metrics.Metrics
	JWT     *jwt.Service

	relay *notification.RedisRelay
}

// New wires repositories, services and handlers. rdb may be nil, in which case
// notifications are only pushed to connections on this instance.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Server, error) {
	if err := validator.RegisterGinValidations(); err != nil {
		return nil, err
	}

	m := metrics.New("bookinghub")
	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories
	userRepo := auth.NewUserRepository(db)
	facilityRepo := facility.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// Notifications
	hub := notification.NewHub(m)
	var publisher notification.Publisher = hub
	var relay *notification.RedisRelay
	if rdb != nil {
		relay = notification.NewRedisRelay(rdb, cfg.RedisChannel, hub)
		publisher = relay
	}
	notificationService := notification.NewService(notificationRepo, publisher)

	// Services
	authService := auth.NewService(userRepo, jwtService)
	lookup := facility.NewCachedLookup(facilityRepo, cfg.FacilityCache)
	facilityService := facility.NewService(facilityRepo, lookup)
	bookingService := booking.NewService(bookingRepo, lookup, authService, notificationService, m)

	// Handlers
	authHandler := auth.NewHandler(authService)
	facilityHandler := facility.NewHandler(facilityService)
	bookingHandler := booking.NewHandler(bookingService)
	notificationHandler := notification.NewHandler(notificationService, hub, jwtService)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	notificationHandler.RegisterWSRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		facilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		facilityHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterProtectedRoutes(protected)
		notificationHandler.RegisterProtectedRoutes(protected)
	}

	return &Server{
		Router:  r,
		Hub:     hub,
		Metrics: m,
		JWT:     jwtService,
		relay:   relay,
	}, nil
}

// RunRelay keeps the Redis subscription alive until ctx ends. Without Redis it returns immediately.
func (s *Server) RunRelay(ctx context.Context) error {
	if s.relay == nil {
		return nil
	}
	return s.relay.Run(ctx)
}

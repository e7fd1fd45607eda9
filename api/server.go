package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/middleware"
	"github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/providers"
	"github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse"
	activitylogs "github.com/PartnerPortal/PartnerPortal-Backend/services/activity_logs"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/deals"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/tasks"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/redis"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/security"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
)

const (
	tokenWarmupTaskID     = "dataverse-token-warmup"
	activityCleanupTaskID = "activity-log-cleanup"
)

// Dependencies are built by the caller so tests can swap any of them.
type Dependencies struct {
	Config       *utils.Config
	Logger       *logging.Logger
	Dataverse    *dataverse.D365Client
	ProfileCache contact.ProfileCache
	Users        *user_service.UserService
	Scheduler    *tasks.TaskScheduler
}

type Server struct {
	router          *gin.Engine
	config          *utils.Config
	logger          *logging.Logger
	provider        *providers.ProviderService
	contacts        *contact.ContactService
	users           *user_service.UserService
	deals           *deals.DealService
	revocations     *security.RevocationList
	activity        *activitylogs.ActivityLog
	tokenController *utils.JWTToken
	scheduler       *tasks.TaskScheduler
	closers         []func() error
}

func NewServer(d *Dependencies) *Server {
	if d.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	g := gin.New()
	g.Use(gin.Recovery())

	p := providers.NewProviderService()
	p.AddProvider(d.Dataverse)

	activity := activitylogs.NewActivityLog(activitylogs.DefaultMaxEntries)

	g.Use(CORSMiddleware(d.Config.AllowedOrigin))
	g.Use(d.Logger.LoggingMiddleWare())
	g.Use(middleware.NewActivityLogMiddleware(activity).ActivityLogger())

	s := &Server{
		router:          g,
		config:          d.Config,
		logger:          d.Logger,
		provider:        p,
		contacts:        contact.NewContactService(d.Dataverse, d.ProfileCache, d.Logger),
		users:           d.Users,
		deals:           deals.NewDealService(d.Logger),
		revocations:     security.NewRevocationList(),
		activity:        activity,
		tokenController: utils.NewJWTToken(d.Config),
		scheduler:       d.Scheduler,
	}

	s.registerRoutes()
	return s
}

// NewServerFromEnv loads configuration from envPath and wires the
// production dependencies.
func NewServerFromEnv(envPath string) (*Server, error) {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	l := logging.NewLogger(c)
	l.WithField("config", c.Redact()).Debug("config loaded")

	d365Config, err := dataverse.LoadD365Config(envPath)
	if err != nil {
		return nil, err
	}

	d365, err := dataverse.NewD365Client(d365Config, dataverse.WithLogger(l))
	if err != nil {
		return nil, err
	}

	var closers []func() error
	var profileCache contact.ProfileCache
	switch c.ProfileCache {
	case utils.ProfileCacheRedis:
		r, err := redis.NewRedisService(&redis.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
			Prefix:   "portal",
		})
		if err != nil {
			return nil, err
		}
		profileCache = r
		closers = append(closers, r.Close)
	default:
		profileCache = contact.NewMemoryProfileCache(security.NewCache(contact.DefaultProfileTTL, 10*time.Minute))
	}

	users := user_service.NewUserService(l)
	if err := users.SeedDemoUsers(c.DemoPassword); err != nil {
		return nil, err
	}

	scheduler := tasks.NewTaskScheduler(l)

	s := NewServer(&Dependencies{
		Config:       c,
		Logger:       l,
		Dataverse:    d365,
		ProfileCache: profileCache,
		Users:        users,
		Scheduler:    scheduler,
	})
	s.closers = closers

	if err := s.scheduleTokenWarmup(d365); err != nil {
		return nil, err
	}
	if err := s.scheduleActivityCleanup(); err != nil {
		return nil, err
	}

	return s, nil
}

// scheduleTokenWarmup refreshes the Dataverse token in the background so
// that user requests rarely wait on the token endpoint.
func (s *Server) scheduleTokenWarmup(d365 *dataverse.D365Client) error {
	if s.scheduler == nil || s.config.TokenWarmupMins <= 0 {
		return nil
	}

	_, err := s.scheduler.AddTask(tokenWarmupTaskID, "dataverse token warmup", func(ctx context.Context) error {
		_, err := d365.GetAccessToken(ctx)
		return err
	}, time.Duration(s.config.TokenWarmupMins)*time.Minute)
	if err != nil {
		return err
	}

	return s.scheduler.ScheduleTask(tokenWarmupTaskID, 0)
}

func (s *Server) scheduleActivityCleanup() error {
	if s.scheduler == nil {
		return nil
	}

	cleanup := activitylogs.NewActivityLogCleanupService(s.activity, s.logger, activitylogs.DefaultRetention)
	if _, err := s.scheduler.AddTask(activityCleanupTaskID, "activity log retention", cleanup.Cleanup, 24*time.Hour); err != nil {
		return err
	}

	return s.scheduler.ScheduleTask(activityCleanupTaskID, time.Hour)
}

func (s *Server) registerRoutes() {
	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to the Partner Portal API!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Health{}.router(s)
	Auth{}.router(s)
	Profile{}.router(s)
	Contacts{}.router(s)
	Theme{}.router(s)
	Deals{}.router(s)
	ActivityLog{}.router(s)
}

func (s *Server) dataverseClient() (*dataverse.D365Client, bool) {
	p, exists := s.provider.GetProvider(providers.Dataverse)
	if !exists {
		return nil, false
	}
	d365, ok := p.(*dataverse.D365Client)
	return d365, ok
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", s.config.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(fmt.Sprintf("Partner Portal API listening on %s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.close()
	return err
}

func (s *Server) close() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn(fmt.Sprintf("error during shutdown: %v", err))
		}
	}
}

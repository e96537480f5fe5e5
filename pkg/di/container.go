package di

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/application/serviceimpl"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/faceapi"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/postgres"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/redis"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/sms"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/storage"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/worker"
	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/pkg/config"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
	"github.com/Nihalturkar/Event-System-backend/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *goredis.Client
	OTPStore       *redis.OTPStore
	ObjectStorage  storage.ObjectStorage
	EventScheduler scheduler.EventScheduler
	SMSClient      *sms.Client
	FaceClient     *faceapi.FaceClient

	// Repositories
	UserRepository       repositories.UserRepository
	EventRepository      repositories.EventRepository
	PhotoRepository      repositories.PhotoRepository
	FaceRepository       repositories.FaceRepository
	EventGuestRepository repositories.EventGuestRepository

	// Services
	AuthService       services.AuthService
	EventService      services.EventService
	PhotoService      services.PhotoService
	GuestService      services.GuestService
	ProcessingService services.ProcessingService

	// Workers
	Tracker  *worker.ProcessingTracker
	Pipeline *worker.ProcessingPipeline
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initWorkers(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis
	redisClient, err := redis.NewClient(c.Config.Redis)
	if err != nil {
		return err
	}
	c.RedisClient = redisClient
	c.OTPStore = redis.NewOTPStore(redisClient)
	logger.Startup("redis_connected", "Redis connected", nil)

	// Initialize object storage
	objectStorage, err := storage.NewMinioStorage(c.Config.Storage)
	if err != nil {
		return err
	}
	c.ObjectStorage = objectStorage
	logger.Startup("storage_initialized", "Object storage initialized", map[string]interface{}{
		"bucket": c.Config.Storage.Bucket,
	})

	// Initialize SMS gateway
	c.SMSClient = sms.NewClient(c.Config.SMS)
	if c.Config.SMS.DevMode {
		logger.StartupWarn("sms_dev_mode", "SMS gateway in dev mode, OTPs are returned in responses", nil)
	}

	// Initialize Face API client
	if c.Config.FaceAPI.Enabled {
		c.FaceClient = faceapi.NewFaceClient(c.Config.FaceAPI.BaseURL)
		logger.Startup("face_api_initialized", "Face API client initialized", map[string]interface{}{
			"base_url": c.Config.FaceAPI.BaseURL,
		})
	} else {
		logger.StartupWarn("face_api_disabled", "Face API disabled, server-side processing unavailable", nil)
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.EventRepository = postgres.NewEventRepository(c.DB)
	c.PhotoRepository = postgres.NewPhotoRepository(c.DB)
	c.FaceRepository = postgres.NewFaceRepository(c.DB)
	c.EventGuestRepository = postgres.NewEventGuestRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initWorkers() error {
	c.Tracker = worker.NewProcessingTracker(c.Config.Matching.TrackerRetention)

	if c.FaceClient != nil {
		c.Pipeline = worker.NewProcessingPipeline(
			c.PhotoRepository,
			c.FaceRepository,
			c.EventRepository,
			c.FaceClient,
			c.Tracker,
		)
		c.ProcessingService = c.Pipeline
		logger.Startup("pipeline_initialized", "Processing pipeline initialized", nil)
	}

	return nil
}

func (c *Container) initServices() error {
	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, c.OTPStore, c.SMSClient, c.Config.JWT)
	c.EventService = serviceimpl.NewEventService(
		c.EventRepository,
		c.PhotoRepository,
		c.FaceRepository,
		c.EventGuestRepository,
		c.ObjectStorage,
		c.Config.App.BaseURL,
	)
	c.PhotoService = serviceimpl.NewPhotoService(
		c.PhotoRepository,
		c.EventRepository,
		c.FaceRepository,
		c.ObjectStorage,
	)
	c.GuestService = serviceimpl.NewGuestService(
		c.EventRepository,
		c.EventGuestRepository,
		c.PhotoRepository,
		c.UserRepository,
		c.Config.Matching.Threshold,
	)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()

	// Drop expired pipeline entries so the tracker map stays bounded.
	err := c.EventScheduler.AddJob("tracker-sweep", "*/5 * * * *", func() {
		removed := c.Tracker.Sweep()
		if removed > 0 {
			logger.Scheduler("tracker_sweep", "Expired pipeline entries removed", map[string]interface{}{
				"removed": removed,
			})
		}
	})
	if err != nil {
		logger.StartupWarn("tracker_sweep_schedule_failed", "Failed to schedule tracker sweep", map[string]interface{}{"error": err.Error()})
	}

	logger.Startup("scheduler_started", "Scheduler started", nil)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Startup("scheduler_stopped", "Scheduler stopped", nil)
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService:       c.AuthService,
		EventService:      c.EventService,
		PhotoService:      c.PhotoService,
		GuestService:      c.GuestService,
		ProcessingService: c.ProcessingService,
	}
}

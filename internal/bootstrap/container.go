package bootstrap

import (
	"log"
	"time"

	"music-match-be/internal/config"
	"music-match-be/internal/controller"
	"music-match-be/internal/pkg/logger"
	"music-match-be/internal/repository/memory"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/internal/service"
	"music-match-be/pkg/archetype"
	"music-match-be/pkg/preview/factory"
	"music-match-be/pkg/recommend"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	UserController        controller.IUserController
	MatchController       controller.IMatchController
	LibraryController     controller.ILibraryController
	PersonalityController controller.IPersonalityController
	PreviewController     controller.IPreviewController
	TrackController       controller.ITrackController
	HealthController      controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Domain Capabilities
	previewProvider, err := factory.NewProvider(
		cfg.Preview.Provider,
		cfg.Preview.ItunesBaseURL,
		cfg.Preview.SpotifyClientID,
		cfg.Preview.SpotifyClientSecret,
		time.Duration(cfg.Preview.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize preview provider: %v", err)
	}
	log.Printf("[INFO] Using Preview Provider: %s", previewProvider.Name())

	selector := recommend.NewSelector(uowFactory)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	enrichmentService := service.NewEnrichmentService(
		previewProvider,
		time.Duration(cfg.Preview.TimeoutSeconds)*time.Second,
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.Match.PrefetchTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Match.PrefetchTopic,
		uowFactory,
		enrichmentService,
	)

	userService := service.NewUserService(uowFactory)
	trackService := service.NewTrackService(uowFactory)
	libraryService := service.NewLibraryService(uowFactory, trackService, enrichmentService)

	sessionService := service.NewSessionService(
		sessionRepo,
		uowFactory,
		trackService,
		userService,
		selector,
		enrichmentService,
		publisherService,
		sysLogger,
		cfg.Match.SeedSize,
	)

	personalityService := service.NewPersonalityService(
		libraryService,
		enrichmentService,
		archetype.NewRuleClassifier(),
	)

	// 5. Controllers
	return &Container{
		UserController:        controller.NewUserController(userService),
		MatchController:       controller.NewMatchController(sessionService),
		LibraryController:     controller.NewLibraryController(libraryService),
		PersonalityController: controller.NewPersonalityController(personalityService),
		PreviewController:     controller.NewPreviewController(trackService, enrichmentService),
		TrackController:       controller.NewTrackController(trackService),
		HealthController:      controller.NewHealthController(),

		ConsumerService: consumerService,
	}
}

package bootstrap

import (
	"context"
	"log"

	"ai-blogcms-be/internal/config"
	"ai-blogcms-be/internal/controller"
	"ai-blogcms-be/internal/handler"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/repository"
	"ai-blogcms-be/internal/repository/memory"
	"ai-blogcms-be/internal/repository/unitofwork"
	"ai-blogcms-be/internal/service"
	"ai-blogcms-be/internal/websocket"
	"ai-blogcms-be/pkg/ai/article"
	"ai-blogcms-be/pkg/llm/factory"
	"ai-blogcms-be/pkg/unsplash"

	pktNats "ai-blogcms-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	BlogController       controller.IBlogController
	BlogPostController   controller.IBlogPostController
	BlogAuthorController controller.IBlogAuthorController
	EditorController     controller.IEditorController
	ImageController      controller.IImageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Shared logger for server middleware
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	// Buffered so a slow editor event subscriber cannot stall publishers.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI Transformer
	var transformer article.Transformer
	if cfg.Ai.UseMock {
		transformer = article.MockTransformer{}
		log.Printf("[INFO] Using AI Transformer: MOCK")
	} else {
		apiKey := cfg.Keys.HuggingFace
		baseURL := ""
		switch cfg.Ai.LLMProvider {
		case "openai":
			apiKey = cfg.Keys.OpenAI
		case "ollama":
			baseURL = cfg.Ai.OllamaBaseURL
		}
		llmProvider, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			baseURL,
			apiKey,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		transformer = article.NewLLMTransformer(llmProvider)
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// In-memory editor session storage
	sessionRepo := memory.NewSessionRepository()

	// Unsplash (optional, search endpoint degrades without a key)
	var unsplashClient *unsplash.Client
	if cfg.Keys.Unsplash != "" {
		unsplashClient = unsplash.NewClient(cfg.Keys.Unsplash)
	} else {
		log.Printf("[WARN] UNSPLASH_ACCESS_KEY not set, image search disabled")
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.CacheTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.CacheTopic,
		rdb,
	)

	authService := service.NewAuthService(uowFactory, natsPub)
	authorService := service.NewBlogAuthorService(uowFactory)
	postService := service.NewBlogPostService(uowFactory, publisherService, natsPub)
	blogService := service.NewBlogService(uowFactory, rdb, sysLogger)
	editorService := service.NewEditorService(sessionRepo, transformer, postService, natsPub, pubSub, sysLogger)
	imageService := service.NewImageService(unsplashClient, sysLogger)

	// 4.5 Notification System Infrastructure
	notifRepo := repository.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 5. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		Logger:               sysLogger,
		AuthController:       controller.NewAuthController(authService),
		BlogController:       controller.NewBlogController(blogService),
		BlogPostController:   controller.NewBlogPostController(postService),
		BlogAuthorController: controller.NewBlogAuthorController(authorService),
		EditorController:     controller.NewEditorController(editorService, pubSub),
		ImageController:      controller.NewImageController(imageService),

		ConsumerService: consumerService,
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	apiidentity "github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/infrastruture/events"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient    *redis.Client
	publisher      i.Publisher
	generator      *service.Generator
	mazeController api_i.Controller
	operator       *identity.Operator
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, generation events will not be published")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initPublisher() {
	if redisClient == nil {
		publisher = events.NopPublisher{}
		return
	}

	var err error
	publisher, err = events.NewRedisPublisher(redisClient, config.Envs.RedisChannel, newLogger("EVENTS", config.ColorPurple))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating event publisher: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Event publisher initialized")
}

func initGenerator(ctx context.Context) {
	mc := config.Envs.Maze
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	generator, err = service.NewGenerator(ctx, service.GeneratorConfig{
		Defaults: i.Params{
			Width:         mc.Width,
			Height:        mc.Height,
			Origin:        maze.Coord{X: mc.OriginX, Y: mc.OriginY},
			StepBudget:    mc.StepBudget,
			Seed:          mc.Seed,
			CellSize:      mc.CellSize,
			WallThickness: mc.WallThickness,
			WallsVisible:  true,
			InfoVisible:   true,
			Palette:       render.RandomPalette(rng),
		},
		WindowWidth:  mc.WindowWidth,
		WindowHeight: mc.WindowHeight,
		Tick:         time.Duration(mc.TickMS) * time.Millisecond,
		Publisher:    publisher,
		Logger:       newLogger("GENERATOR", config.ColorCyan),
		Rand:         rng,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generator initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(generator, newLogger("MAZE-API", config.ColorBlue))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initOperator() {
	if config.Envs.OperatorPassword == "" {
		appLogger.Error("OPERATOR_PASSWORD must be set")
		os.Exit(1)
	}

	var err error
	operator, err = identity.NewOperator(config.Envs.OperatorName, config.Envs.OperatorPassword)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating operator: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Operator initialized")
}

func initJWTTokenizer() {
	if config.Envs.JWTSecret == "" {
		appLogger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	ttl := time.Duration(config.Envs.JWTTTLMinutes) * time.Minute
	authService, err = service.NewAuthService(operator, jwtTokenizer, ttl)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = apiidentity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: apiidentity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	gin.SetMode(config.Envs.GinMode)

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initPublisher()
	initGenerator(ctx)
	initMazeController()
	initOperator()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	go func() {
		if err := generator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error(fmt.Sprintf("Generator stopped: %v", err))
		}
	}()

	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}

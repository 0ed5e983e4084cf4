package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/cache"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/lifecycle"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/matching"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/notification"
)

// MyServer contain port which server are running on and the wired services
type MyServer struct {
	port int

	DB         *database.DBinstanceStruct
	Manager    *lifecycle.Manager
	Dispatcher *notification.Dispatcher
	Cache      *cache.Redis
	Logger     *zap.Logger
}

// NewServer construct new http.Server instance with all services wired
func NewServer(logger *zap.Logger) (*http.Server, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	oracle := matching.NewOpenAIOracle()
	engine := matching.NewEngine(oracle, 0, logger.Named("matching"))
	dispatcher := notification.NewDispatcher(db)
	manager := lifecycle.NewManager(db, engine, dispatcher, logger.Named("lifecycle"))

	s := &MyServer{
		port:       port,
		DB:         db,
		Manager:    manager,
		Dispatcher: dispatcher,
		Cache:      cache.NewRedis(logger.Named("cache")),
		Logger:     logger,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

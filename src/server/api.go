package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"chart-challenge/src/helpers"
	"chart-challenge/src/interfaces"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"
	"chart-challenge/src/round"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Rounds *round.Manager
	Store  interfaces.IRoundStore
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MDailyChallenge // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client

	// Local cache of the last broadcast challenge
	latestDaily *models.MDailyChallenge
	stateMutex  sync.RWMutex

	done chan struct{}
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, log *logger.Logger, rounds *round.Manager, store interfaces.IRoundStore) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  log,
		Rounds:  rounds,
		Store:   store,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel so a burst of scheduler ticks never blocks
		broadcast:  make(chan *models.MDailyChallenge, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/metrics", s.getMetrics)
	s.engine.GET("/api/daily", s.getDaily)
	s.engine.POST("/api/rounds", s.postRound)
	s.engine.POST("/api/rounds/:id/guess", s.postGuess)
	s.engine.GET("/api/users/:id/stats", s.getUserStats)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	// Stop the hub loop and drop every client
	close(s.done)

	s.stateMutex.Lock()
	for client := range s.clients {
		close(client.send)
		delete(s.clients, client)
	}
	s.stateMutex.Unlock()

	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

type startRoundRequest struct {
	UserID     string `json:"user_id"`
	Difficulty string `json:"difficulty"`
}

func (s *APIServer) postRound(c *gin.Context) {
	var req startRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Anonymous players get a fresh id; clients keep and resend it.
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}
	if req.Difficulty == "" {
		req.Difficulty = s.Config.Game.Difficulties[0].Name
	}

	payload, err := s.Rounds.StartRound(req.UserID, req.Difficulty)
	if err != nil {
		var cfgErr *helpers.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Probabilistic generation failures already exhausted their retries.
		s.Logger.Error("Round generation failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation failed, please try again"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": req.UserID,
		"round":   payload,
	})
}

// -----------------------------------------------------------------------------

type guessRequest struct {
	UserID      string `json:"user_id"`
	ChoiceIndex *int   `json:"choice_index"`
	DurationMs  int64  `json:"duration_ms"`
}

func (s *APIServer) postGuess(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChoiceIndex == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.Rounds.SubmitGuess(c.Param("id"), req.UserID, *req.ChoiceIndex, req.DurationMs)
	switch {
	case errors.Is(err, round.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, round.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, round.ErrWrongUser):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		s.Logger.Error("Guess evaluation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) getUserStats(c *gin.Context) {
	stats, err := s.Store.GetUserStats(c.Param("id"))
	if err != nil {
		s.Logger.Error("Failed to read user stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getDaily(c *gin.Context) {
	daily := s.Rounds.Daily()
	if daily == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no daily challenge yet"})
		return
	}
	c.JSON(http.StatusOK, daily)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	names := make([]string, len(s.Config.Game.Difficulties))
	for i, d := range s.Config.Game.Difficulties {
		names[i] = d.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"resolutions":  models.AllResolutions,
		"difficulties": names,
		"choice_count": s.Config.Game.ChoiceCount,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	var dailyTs int64
	if s.latestDaily != nil {
		dailyTs = s.latestDaily.Timestamp
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"connections":  connections,
		"latest_daily": dailyTs,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getMetrics(c *gin.Context) {
	active, played, correct, avgScore := s.Rounds.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"active_rounds":  active,
		"recent_played":  played,
		"recent_correct": correct,
		"recent_avg":     avgScore,
		"heap_usage_mb":  helpers.MemoryUsageMB(),
	})
}

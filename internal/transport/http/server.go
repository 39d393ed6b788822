// Package http exposes the chatbot over a JSON API.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/service/chat"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

// ChatService is what the transport needs from the chat layer.
type ChatService interface {
	Ask(ctx context.Context, sessionID, query string) (chat.Answer, error)
	ContextualKnowledge(ctx context.Context, query string) core.Bundle
	Reset(sessionID string) error
	Stats() core.SessionStats
}

type Server struct {
	addr        string
	engine      *gin.Engine
	service     ChatService
	transcripts core.TranscriptRepo // nil when journaling is disabled
	srv         *http.Server
}

func NewServer(ctx context.Context, addr string, service ChatService, transcripts core.TranscriptRepo) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		addr:        addr,
		engine:      engine,
		service:     service,
		transcripts: transcripts,
	}

	engine.Use(RecoveryMiddleware(ctx))
	engine.Use(CORSMiddleware())
	engine.Use(LoggingMiddleware(ctx))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")
	{
		api.POST("/chat", s.handleChat)
		api.POST("/sessions/:id/reset", s.handleReset)
		api.GET("/sessions/stats", s.handleStats)
		api.GET("/knowledge/context", s.handleContext)
		api.GET("/transcripts", s.handleTranscripts)
	}

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	answer, err := s.service.Ask(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, answer)
}

func (s *Server) handleReset(c *gin.Context) {
	if err := s.service.Reset(c.Param("id")); err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"reset": true})
}

func (s *Server) handleStats(c *gin.Context) {
	Success(c, s.service.Stats())
}

func (s *Server) handleContext(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		BadRequest(c, errors.New("query parameter q is required"))
		return
	}
	Success(c, s.service.ContextualKnowledge(c.Request.Context(), query))
}

func (s *Server) handleTranscripts(c *gin.Context) {
	if s.transcripts == nil {
		c.JSON(http.StatusNotFound, Response{Code: 404, Message: "transcript journal disabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			BadRequest(c, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := s.transcripts.Recent(c.Request.Context(), limit)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, entries)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting http server")

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/metrics"
	"github.com/agenthands/storygraph/internal/semantic"
)

const (
	defaultAssetLimit = 100
	maxAssetLimit     = 35000
)

// NetworkService builds the asset network views.
type NetworkService interface {
	CommunityView(ctx context.Context) (model.View, error)
	OptimizedView(ctx context.Context) (model.View, error)
	FullView(ctx context.Context) (model.View, error)
	Assets(ctx context.Context, limit int) ([]model.AssetRecord, error)
	Asset(ctx context.Context, id string) (model.AssetDetail, error)
}

// SemanticService answers embedding similarity queries.
type SemanticService interface {
	Graph(ctx context.Context, limit int, threshold float64) (model.SemanticGraph, error)
	Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error)
	Similar(ctx context.Context, id string, limit int) ([]model.SearchResult, error)
}

type Server struct {
	Network  NetworkService
	Semantic SemanticService
	Logger   *zap.SugaredLogger
	Metrics  *metrics.Collector
}

func NewServer(network NetworkService, sem SemanticService, logger *zap.SugaredLogger, m *metrics.Collector) *Server {
	return &Server{
		Network:  network,
		Semantic: sem,
		Logger:   logger,
		Metrics:  m,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), s.observe())

	r.GET("/health", s.Health)
	r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))

	api := r.Group("/api")
	api.GET("/network-data", s.view((NetworkService).FullView))
	api.GET("/network-data-optimized", s.view((NetworkService).OptimizedView))
	api.GET("/network-data-community-view", s.view((NetworkService).CommunityView))
	api.GET("/assets", s.ListAssets)
	api.GET("/assets/:id", s.GetAsset)
	api.GET("/assets/:id/similar", s.SimilarAssets)
	api.GET("/graph-data", s.GraphData)
	api.POST("/semantic-search", s.SemanticSearch)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) view(build func(NetworkService, context.Context) (model.View, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := build(s.Network, c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func (s *Server) ListAssets(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	limit = semantic.Clamp(limit, defaultAssetLimit, maxAssetLimit)

	assets, err := s.Network.Assets(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets, "count": len(assets)})
}

func (s *Server) GetAsset(c *gin.Context) {
	detail, err := s.Network.Asset(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) SimilarAssets(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	results, err := s.Semantic.Similar(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) GraphData(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	threshold := semantic.DefaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(c, "threshold must be a number")
			return
		}
		threshold = v
	}

	g, err := s.Semantic.Graph(c.Request.Context(), limit, threshold)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) SemanticSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	results, err := s.Semantic.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// intQuery parses an optional integer query parameter. It writes a 400 and
// reports false when the value is present but not an integer.
func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, key+" must be an integer")
		return 0, false
	}
	return v, true
}

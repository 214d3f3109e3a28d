package api

import (
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/store"
)

// Server exposes the pipeline over HTTP
type Server struct {
	pipeline *pipeline.Pipeline
	repo     *store.Repository
	cfg      model.ServerConfig
}

// NewServer creates the HTTP API server. repo may be nil when persistence
// is disabled.
func NewServer(p *pipeline.Pipeline, repo *store.Repository, cfg model.ServerConfig) *Server {
	return &Server{pipeline: p, repo: repo, cfg: cfg}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if s.cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = s.cfg.MaxUploadBytes
	}

	corsCfg := cors.DefaultConfig()
	if s.cfg.FrontendOrigin != "" {
		corsCfg.AllowOrigins = []string{s.cfg.FrontendOrigin}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = true
	r.Use(cors.New(corsCfg))

	r.GET("/", s.handleRoot)

	claims := r.Group("/api/claims")
	{
		claims.POST("/", s.handleTextClaim)
		claims.POST("/multimodal", s.handleMultimodalClaim)
		claims.POST("/url", s.handleURLClaim)
		claims.GET("/recent", s.handleRecent)
	}

	return r
}

// Run starts the server on the configured address
func (s *Server) Run() error {
	return s.Router().Run(s.cfg.Addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Claim verification API is running. Use /api/claims endpoints."})
}

type textClaimRequest struct {
	ClaimText string `json:"claim_text" binding:"required"`
}

func (s *Server) handleTextClaim(c *gin.Context) {
	var req textClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim_text is required"})
		return
	}

	result := s.pipeline.CheckTextClaim(c.Request.Context(), req.ClaimText)
	c.JSON(statusFor(result), result)
}

func (s *Server) handleMultimodalClaim(c *gin.Context) {
	claimText := c.PostForm("claim_text")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if s.cfg.MaxUploadBytes > 0 && fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result := s.pipeline.CheckMediaClaim(c.Request.Context(), claimText, content, contentType, fileHeader.Filename)
	c.JSON(statusFor(result), result)
}

type urlClaimRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleURLClaim(c *gin.Context) {
	var req urlClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	result := s.pipeline.CheckURLClaim(c.Request.Context(), req.URL)
	c.JSON(statusFor(result), result)
}

func (s *Server) handleRecent(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim history is not enabled"})
		return
	}

	records, err := s.repo.Recent(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": records})
}

// statusFor keeps the envelope contract: pipeline failures are reported in
// the body with status ok=200, error=422
func statusFor(result *model.VerdictResult) int {
	if result.Status == model.StatusError {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

package http

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halitkalayci/gyk-backend/internal/adapters/transport/http/dto"
	"github.com/halitkalayci/gyk-backend/internal/adapters/transport/http/middleware"
	authsvc "github.com/halitkalayci/gyk-backend/internal/app/auth/service"
	platesvc "github.com/halitkalayci/gyk-backend/internal/app/plate"
	usersvc "github.com/halitkalayci/gyk-backend/internal/app/user"
	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/infra/config"
)

type Handler struct {
	authSvc  authsvc.Service
	userSvc  usersvc.Service
	plateSvc *platesvc.Service
	cfg      *config.Config
	log      *zap.Logger
}

func NewHandler(a authsvc.Service, u usersvc.Service, p *platesvc.Service, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{authSvc: a, userSvc: u, plateSvc: p, cfg: cfg, log: log}
}

// NewRouter wires middleware and all routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.log))
	router.Use(middleware.NewRateLimitPerIP(50, 100, 10_000, time.Hour))
	// cors rejects credentials combined with a wildcard origin
	allowCredentials := h.cfg.AllowCredentials
	for _, origin := range h.cfg.AllowedOrigins {
		if origin == "*" {
			allowCredentials = false
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.RequireAuth(h.authSvc, h.log)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := router.Group("/users")
	{
		users.GET("/me", requireAuth, h.Me)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", requireAuth, h.UpdateUser)
		users.DELETE("/:id", requireAuth, h.DeleteUser)
	}

	plaka := router.Group("/plaka")
	{
		plaka.POST("/detect", requireAuth, h.Detect)
		plaka.POST("/detect-image", requireAuth, h.DetectImage)
		plaka.GET("/model-status", h.ModelStatus)
	}

	return router
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "welcome to the GYK backend API"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.authSvc.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		h.handleError(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.userSvc.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	u, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	current, ok := middleware.UserFromContext(c)
	if !ok {
		h.handleError(c, apperrors.ErrUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userSvc.Update(c.Request.Context(), current, id, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	current, ok := middleware.UserFromContext(c)
	if !ok {
		h.handleError(c, apperrors.ErrUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), current, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *Handler) Detect(c *gin.Context) {
	threshold, err := h.confidence(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := h.openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer frame.Close()

	detections, err := h.plateSvc.Detect(c.Request.Context(), frame, threshold)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PlakaResponse{
		Detections:      detections,
		TotalDetections: len(detections),
		Message:         fmt.Sprintf("%d plates detected", len(detections)),
	})
}

func (h *Handler) DetectImage(c *gin.Context) {
	current, ok := middleware.UserFromContext(c)
	if !ok {
		h.handleError(c, apperrors.ErrUnauthorized)
		return
	}

	threshold, err := h.confidence(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := h.openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer frame.Close()

	_, annotated, err := h.plateSvc.DetectAndAnnotate(c.Request.Context(), frame, threshold)
	if err != nil {
		h.handleError(c, err)
		return
	}

	path, err := platesvc.WriteTemp(annotated)
	if err != nil {
		h.handleError(c, apperrors.WrapInternal(err, "write annotated image"))
		return
	}
	defer os.Remove(path)

	c.FileAttachment(path, fmt.Sprintf("detected_plates_%s.jpg", current.Username))
}

func (h *Handler) ModelStatus(c *gin.Context) {
	loaded, modelURL := h.plateSvc.Status(c.Request.Context())
	status := "model loaded"
	if !loaded {
		status = "model unavailable"
	}
	c.JSON(http.StatusOK, dto.ModelStatusResponse{
		ModelLoaded: loaded,
		ModelURL:    modelURL,
		Status:      status,
	})
}

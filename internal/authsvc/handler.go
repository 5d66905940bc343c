package authsvc

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pterm/pterm"
	"golang.org/x/time/rate"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/build"
)

// SessionCookie carries the session ID.
const SessionCookie = "BIONICPRO_SESSION"

// CallbackRequest is the body of POST /api/auth/callback.
type CallbackRequest struct {
	Code         string `json:"code" binding:"required"`
	CodeVerifier string `json:"code_verifier" binding:"required"`
	RedirectURI  string `json:"redirect_uri" binding:"required"`
}

// Handler serves /api/auth.
type Handler struct {
	svc     *Service
	limiter *rate.Limiter
	maxAge  int
	logger  *pterm.Logger
}

// NewHandler creates a Handler. limiter guards the callback endpoint,
// sessionTTL sets the cookie Max-Age.
func NewHandler(svc *Service, limiter *rate.Limiter, sessionTTL time.Duration, logger *pterm.Logger) *Handler {
	return &Handler{
		svc:     svc,
		limiter: limiter,
		maxAge:  int(sessionTTL / time.Second),
		logger:  logger,
	}
}

// Router returns the service routes.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "build": build.Current()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/auth")
	api.POST("/callback", h.rateLimit(), h.Callback)
	api.GET("/session", h.Session)
	api.GET("/token", h.Token)
	api.POST("/refresh", h.Refresh)
	api.POST("/logout", h.Logout)
	return r
}

func (h *Handler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.svc.Authenticate(c.Request.Context(), req.Code, req.CodeVerifier, req.RedirectURI)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrAuthentication.Error()})
		return
	}

	h.setSessionCookie(c, id)
	c.JSON(http.StatusOK, gin.H{"sessionId": id, "status": "authenticated"})
}

func (h *Handler) Session(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	info, err := h.svc.Session(c.Request.Context(), id)
	if err != nil {
		h.abort(c, h.sessionError(err, "Session expired"))
		return
	}

	body := gin.H{"sessionId": info.SessionID, "authenticated": true}
	if info.User != "" {
		body["user"] = info.User
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) Token(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	token, newID, err := h.svc.AccessToken(c.Request.Context(), id)
	if err != nil {
		h.abort(c, h.sessionError(err, ErrSessionNotFound.Error()))
		return
	}

	if newID != id {
		h.setSessionCookie(c, newID)
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *Handler) Refresh(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	newID, err := h.svc.Refresh(c.Request.Context(), id)
	if err != nil {
		h.abort(c, h.sessionError(err, ErrSessionNotFound.Error()))
		return
	}

	h.setSessionCookie(c, newID)
	c.JSON(http.StatusOK, gin.H{"sessionId": newID, "status": "refreshed"})
}

func (h *Handler) Logout(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		if err := h.svc.Logout(c.Request.Context(), id); err != nil {
			h.logger.Warn("failed to delete session", h.logger.Args("error", err))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// sessionID reads the cookie and answers 401 when it is missing.
func (h *Handler) sessionID(c *gin.Context) (string, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No session found"})
		return "", false
	}
	return id, true
}

// sessionError answers 401 for every session failure. Only the sentinel
// text reaches the client.
func (h *Handler) sessionError(err error, notFound string) *HTTPError {
	if errors.Is(err, ErrSessionNotFound) {
		return &HTTPError{Status: http.StatusUnauthorized, Message: notFound, Err: err}
	}

	h.logger.Error("session request failed", h.logger.Args("error", err))
	for _, public := range []error{ErrRefresh, ErrRefreshSession} {
		if errors.Is(err, public) {
			return unauthorized(public.Error(), err)
		}
	}
	return unauthorized("Invalid session", err)
}

func (h *Handler) abort(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{"error": err.Message})
}

func (h *Handler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, h.maxAge, "/", "", false, true)
}

func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.limiter.Allow() {
			rateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request", h.logger.Args(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		))
	}
}

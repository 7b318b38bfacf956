// ABOUTME: JSON HTTP API over the tracker, built on gin with CORS.
// ABOUTME: Handlers build tracker requests and map sentinel errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/logging"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/rs/cors"
)

// Handler holds the shared dependencies for all route handlers.
type Handler struct {
	tracker *tracker.Tracker
	foods   *food.Service
	logger  *log.Logger
}

// New creates a Handler. foods may be nil, in which case the food routes return 404.
func New(t *tracker.Tracker, foods *food.Service, logger *log.Logger) *Handler {
	return &Handler{tracker: t, foods: foods, logger: logging.OrDiscard(logger)}
}

// Router returns the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	_ = router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}

// HTTPHandler wraps the router with permissive CORS for browser clients.
func (h *Handler) HTTPHandler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(h.Router())
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/chat", h.chat)
	api.GET("/foods", h.searchFoods)
	api.GET("/foods/:name", h.foodPortion)

	user := api.Group("/users/:user")
	user.GET("/profile", h.getProfile)
	user.PATCH("/profile", h.updateProfile)
	user.GET("/health", h.listHealthSamples)
	user.POST("/health", h.recordHealthSample)
	user.GET("/dashboard", h.getDashboard)
	user.GET("/summary", h.getSummary)
	user.GET("/diet", h.listDietDays)
	user.GET("/exercise", h.listExerciseDays)

	day := user.Group("/days/:date")
	day.GET("/diet", h.getDietDay)
	day.POST("/meals", h.appendMeal)
	day.DELETE("/meals/:id", h.removeMeal)
	day.GET("/exercise", h.getExerciseDay)
	day.POST("/exercises", h.appendExercise)
	day.DELETE("/exercises/:id", h.removeExercise)
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// statusFor maps tracker, storage and food errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrValidation), errors.Is(err, food.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, food.ErrUnknownFood):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "err", err)
		apiError(c, status, "internal error")
		return
	}
	apiError(c, status, err.Error())
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

// dispatch runs req and writes the result with the given success status.
func (h *Handler) dispatch(c *gin.Context, status int, req tracker.Request) {
	out, err := h.tracker.Dispatch(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, out)
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		apiError(c, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

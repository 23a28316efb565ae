package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taaza-khabar/internal/service"
	"taaza-khabar/internal/session"
)

// timestampLayout renders stored timestamps the way SQLite writes them.
const timestampLayout = "2006-01-02 15:04:05"

// Services groups the domain services the routes depend on.
type Services struct {
	Users    service.UserService
	Search   service.SearchService
	Feedback service.FeedbackService
	Tags     service.TagService
	Dump     service.DumpService
}

// Options tunes route behaviour.
type Options struct {
	// IndexPath is the static front-end page served at "/".
	IndexPath string
	// NewsPerMinute caps /get-news calls per client IP. Zero disables the cap.
	NewsPerMinute int64
	Logger        *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	search   service.SearchService
	feedback service.FeedbackService
	tags     service.TagService
	dump     service.DumpService
	sessions *session.Manager
	opts     Options
}

func NewHandler(services Services, sessions *session.Manager, opts Options) *Handler {
	if opts.IndexPath == "" {
		opts.IndexPath = "index.html"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Handler{
		users:    services.Users,
		search:   services.Search,
		feedback: services.Feedback,
		tags:     services.Tags,
		dump:     services.Dump,
		sessions: sessions,
		opts:     opts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", h.index)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)

	news := []gin.HandlerFunc{}
	if h.opts.NewsPerMinute > 0 {
		news = append(news, rateLimitMiddleware(h.opts.NewsPerMinute, time.Minute, h.opts.Logger))
	}
	news = append(news, h.getNews)
	router.GET("/get-news", news...)

	router.GET("/tags", h.listTags)
	router.POST("/feedback", h.submitFeedback)
	router.GET("/search-history", h.requireSession(), h.searchHistory)
	router.GET("/db-view", h.dbView)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "message": message})
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

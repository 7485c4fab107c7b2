package http

import (
	"net/http"

	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/service"
	"todo_webapp/internal/web"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Deps is everything the router needs. DB and Redis may be nil.
type Deps struct {
	Config *config.Config
	Todos  *service.TodoService
	Hub    *ws.Hub
	DB     *pgxpool.Pool
	Redis  *redis.Client
}

// NewEngine builds the gin engine with the middleware chain and all routes.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.Config.CORSAllowedOrigins))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Todos)

	var db handlers.Pinger
	if d.DB != nil {
		db = d.DB
	}
	healthHandler := handlers.NewHealthHandler(db, d.Config.AppVersion, d.Hub.Count)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(d.Redis, d.Config.APIRateLimit, d.Config.APIRateWindow))
	registerAPIRoutes(api, h)

	// Live change feed
	r.GET("/ws", ws.HandleWS(d.Hub, d.Config.AllowedOrigin))

	// Presentation shell
	web.Register(r, d.Config.AppVersion)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	todos := api.Group("/todos")
	{
		todos.GET("", h.ListTodos)
		todos.POST("", h.CreateTodo)
		todos.GET("/stats", h.TodoStats)
		todos.DELETE("/completed", h.ClearCompleted)
		todos.GET("/:id", h.GetTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.PATCH("/:id/toggle", h.ToggleTodo)
	}
}

package api

import (
	"database/sql"
	"fmt"
	"time"

	"clarifi/internal/logger"
	"clarifi/internal/repository"
	"clarifi/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	Db                   *sql.DB
	ChatService          service.ChatService
	AnalyticsService     service.AnalyticsService
	MarketDataRepository repository.MarketDataRepository
	JwtSecret            string
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to clarifi"})
	})

	authed := router.Group("/", m.authMiddleware)
	authed.POST("/chat", m.chat)
	authed.GET("/chat/history", m.getChatHistory)
	authed.DELETE("/chat/history", m.clearChatHistory)
	authed.GET("/analytics/health", m.getHealthReport)

	router.POST("/calculate/emi", m.calculateEmi)
	router.POST("/calculate/sip", m.calculateSip)
	router.POST("/calculate/goal", m.calculateGoal)
	router.GET("/market/quote/:symbol", m.getQuote)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warn(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddleware attaches a request-scoped logger to the context
// and emits one line per request with latency and status.
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	log := logger.New().With("requestID", requestID)
	ctx.Request = ctx.Request.WithContext(
		logger.AddToContext(ctx.Request.Context(), log),
	)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request handled",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}

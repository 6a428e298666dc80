package http

import (
	"github.com/gin-gonic/gin"

	appsvc "pensaai/internal/app"
	"pensaai/internal/bootstrap"
	"pensaai/internal/prompt"
	"pensaai/internal/transport/http/handler"
	"pensaai/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS(app.Config.App.CORSOrigins))

	gate := appsvc.NewScopeGate(app.Config.Tutor.ExtraDenylist)
	composer := prompt.NewComposer(prompt.EducationalPolicy, app.Config.Tutor.MaxPromptChars)
	tutorService := appsvc.NewTutorService(
		gate,
		app.Index,
		composer,
		app.AI,
		app.Config.Index.TopK,
		app.Config.Tutor.MinAnswerLength,
	)

	chatHandler := handler.NewChatHandler(tutorService)
	uploadHandler := handler.NewUploadHandler(app.Store, app.Index)
	healthHandler := handler.NewHealthHandler(
		app.Config.App.Name,
		app.Config.App.Env,
		app.StartedAt,
		app.AI,
		app.Index,
	)

	router.POST("/chat", chatHandler.Chat)
	router.POST("/upload", uploadHandler.Upload)
	router.GET("/health", healthHandler.Check)

	return router
}

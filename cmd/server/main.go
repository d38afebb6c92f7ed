package main

import (
	"log"

	"icebreaker-backend/internal/config"
	"icebreaker-backend/internal/database"
	"icebreaker-backend/internal/handlers"
	"icebreaker-backend/internal/middleware"
	"icebreaker-backend/internal/services"
	"icebreaker-backend/internal/ws"

	_ "icebreaker-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Camp Icebreaker API
// @version         1.0
// @description     Scavenger-hunt backend: QR question bank, gold ledger, global game events over websocket.
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	teamService := services.NewTeamService(db)
	scoreService := services.NewScoreService(db, hub)
	stateService := services.NewStateService(db, hub, cfg.EventRevertDelay)
	questionService := services.NewQuestionService(db, scoreService)
	eventService := services.NewGameEventService(db, scoreService, stateService)
	storageService := services.NewStorageService(cfg.UploadDir, cfg.PublicBaseURL)

	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	scoreHandler := handlers.NewScoreHandler(scoreService, teamService)
	stateHandler := handlers.NewStateHandler(stateService)
	questionHandler := handlers.NewQuestionHandler(questionService, storageService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/ws/state", wsHandler.HandleState)
	r.GET("/ws/leaderboard", wsHandler.HandleLeaderboard)
	r.GET("/ws/teams/:id", wsHandler.HandleTeam)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/teams", teamHandler.ListTeams)
		api.GET("/teams/:id/gold", scoreHandler.GetTeamGold)
		api.GET("/leaderboard", scoreHandler.GetLeaderboard)

		api.GET("/state", stateHandler.ListState)
		api.GET("/state/:key", stateHandler.GetState)

		api.POST("/scan", questionHandler.Scan)
		questions := api.Group("/questions")
		{
			questions.POST("/:id/answer", questionHandler.SubmitAnswer)
			questions.POST("/:id/files", questionHandler.UploadFiles)
			questions.POST("/:id/task", questionHandler.CompleteTask)
			questions.POST("/:id/claim", questionHandler.ClaimTemptation)
		}

		api.POST("/aid/donate", eventHandler.Donate)

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService))
		{
			admin.POST("/scores", scoreHandler.AddScore)
			admin.GET("/scores/overview", scoreHandler.ScoreOverview)

			admin.POST("/freeze", eventHandler.ToggleFreeze)
			admin.POST("/disaster", eventHandler.TriggerDisaster)
			admin.POST("/peace", eventHandler.TriggerPeace)
			admin.POST("/aid/start", eventHandler.StartAid)
			admin.POST("/aid/end", eventHandler.EndAid)
			admin.POST("/thief", eventHandler.TriggerThief)

			admin.POST("/teams", teamHandler.CreateTeam)
			admin.POST("/questions", questionHandler.CreateQuestion)
			admin.GET("/questions", questionHandler.ListQuestions)
			admin.DELETE("/questions/:id", questionHandler.DeleteQuestion)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package main

import (
	"log"

	"github.com/Shaurya01836/Hackzen-sub006/internal/config"
	"github.com/Shaurya01836/Hackzen-sub006/internal/database"
	"github.com/Shaurya01836/Hackzen-sub006/internal/handlers"
	"github.com/Shaurya01836/Hackzen-sub006/internal/middleware"
	"github.com/Shaurya01836/Hackzen-sub006/internal/services"
	"github.com/Shaurya01836/Hackzen-sub006/internal/ws"

	_ "github.com/Shaurya01836/Hackzen-sub006/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Hackzen Judging API
// @version         1.0
// @description     Round progression and judging aggregation engine for hackathons
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	rdb := database.ConnectRedis(cfg)

	hub := ws.NewHub()
	notifier := ws.NewHubNotifier(hub)

	hackathonService := services.NewHackathonService(db)
	criteriaService := services.NewCriteriaService(db)
	submissionService := services.NewSubmissionService(db)
	judgingService := services.NewJudgingService(db, criteriaService)
	progressionService := services.NewProgressionService(db, notifier)
	resultsService := services.NewResultsService(db, rdb)

	hackathonHandler := handlers.NewHackathonHandler(hackathonService, resultsService)
	criteriaHandler := handlers.NewCriteriaHandler(criteriaService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	judgingHandler := handlers.NewJudgingHandler(judgingService)
	progressionHandler := handlers.NewProgressionHandler(progressionService, resultsService)
	resultsHandler := handlers.NewResultsHandler(resultsService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/hackathon/:id", wsHandler.HandleWebSocket)

	auth := middleware.JWTAuth(cfg.JWTSecret)
	organizer := middleware.RequireRole(middleware.RoleOrganizer)
	judgeOrOrganizer := middleware.RequireRole(middleware.RoleJudge, middleware.RoleOrganizer)

	api := r.Group("/api/v1")
	{
		hackathons := api.Group("/hackathons")
		hackathons.Use(auth)
		{
			hackathons.GET("", hackathonHandler.ListHackathons)
			hackathons.POST("", organizer, hackathonHandler.CreateHackathon)
			hackathons.GET("/:id", hackathonHandler.GetHackathon)
			hackathons.GET("/:id/rounds/:index/status", hackathonHandler.GetRoundStatus)

			hackathons.GET("/:id/rounds/:index/criteria", judgeOrOrganizer, criteriaHandler.GetCriteria)
			hackathons.PUT("/:id/rounds/:index/criteria", organizer, criteriaHandler.ReplaceCriteria)

			hackathons.POST("/:id/rounds/:index/submissions", submissionHandler.Submit)
			hackathons.GET("/:id/rounds/:index/submissions", judgeOrOrganizer, submissionHandler.ListByRound)

			hackathons.POST("/:id/rounds/:index/shortlist", organizer, progressionHandler.Shortlist)
			hackathons.POST("/:id/rounds/:index/advance", organizer, progressionHandler.Advance)
			hackathons.POST("/:id/finalize", organizer, progressionHandler.Finalize)
			hackathons.POST("/:id/finalize/reset", organizer, progressionHandler.ResetFinalization)

			hackathons.GET("/:id/rounds/:index/shortlisted", resultsHandler.GetShortlisted)
			hackathons.GET("/:id/winners", resultsHandler.GetWinners)
		}

		submissions := api.Group("/submissions")
		submissions.Use(auth)
		{
			submissions.GET("/:id", submissionHandler.Get)
			submissions.PUT("/:id", submissionHandler.Edit)
			submissions.POST("/:id/scores", middleware.RequireRole(middleware.RoleJudge), judgingHandler.SubmitScore)
			submissions.GET("/:id/scores", judgeOrOrganizer, judgingHandler.ListScores)
			submissions.GET("/:id/aggregate", judgeOrOrganizer, judgingHandler.GetAggregate)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

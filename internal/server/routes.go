// Package server contain implementation of go-gin-server and route registration
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "github.com/InsanelyAvner/fp-nurse-app-sub000/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/auth"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/controller"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/middleware"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	jobCtrl := controller.NewJobController(s.DB)
	appCtrl := controller.NewApplicationController(s.DB, s.Manager, s.Cache)
	notifCtrl := controller.NewNotificationController(s.Dispatcher)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware())
			authRoute.POST("google/nurse", gAuth.NurseGoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", middleware.SizeLimit(1<<20), lAuth.LocalRegisterHandler)
		}

		// Any authenticated routes
		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))
			needAuth.GET("notifications", notifCtrl.GetNotificationsHandler)

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobCtrl.GetJobsHandler)
				jobRoute.GET(":id", jobCtrl.GetJobByIDHandler)

				needNurse := jobRoute.Group("")
				{
					needNurse.Use(middleware.CheckRole(model.RoleUser))
					needNurse.POST(":id/apply", appCtrl.ApplyHandler)
				}

				needAdmin := jobRoute.Group("")
				{
					needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
					needAdmin.POST("", middleware.SizeLimit(1<<20), jobCtrl.CreateJobHandler)
					needAdmin.PATCH(":id", middleware.SizeLimit(1<<20), jobCtrl.EditJobHandler)
					needAdmin.GET(":id/applicants", appCtrl.GetApplicantsHandler)
					needAdmin.POST(":id/applicants/:candidate_id/action", appCtrl.DecisionHandler)
				}
			}

			nurseRoute := needAuth.Group("/nurse")
			{
				nurseRoute.Use(middleware.CheckRole(model.RoleUser))
				nurseRoute.GET("applications", appCtrl.GetMyApplicationsHandler)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}

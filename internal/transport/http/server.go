package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "microblog/internal/app"
	"microblog/internal/bootstrap"
	"microblog/internal/transport/http/handler"
	"microblog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userService := appsvc.NewUserService(app.Users)
	authService := appsvc.NewAuthService(
		app.Users,
		app.Sessions,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	var publisher appsvc.TweetEventPublisher
	if app.TweetEvents != nil {
		publisher = app.TweetEvents
	}
	tweetService := appsvc.NewTweetService(app.Tweets, app.Users, publisher)

	userHandler := handler.NewUserHandler(userService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	authHandler := handler.NewAuthHandler(authService)

	authRequired := middleware.AuthJWT(authService)

	router.POST("/signup", userHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authRequired, authHandler.Logout)

	router.GET("/users", userHandler.List)
	router.GET("/users/:id", userHandler.Get)
	router.PUT("/users/:id/update", authRequired, userHandler.Update)
	router.DELETE("/users/:id/delete", authRequired, userHandler.Delete)

	router.GET("/tweets", tweetHandler.List)
	router.GET("/tweets/:id", tweetHandler.Get)
	router.POST("/post", authRequired, tweetHandler.Post)
	router.PUT("/tweets/:id/update", authRequired, tweetHandler.Update)
	router.DELETE("/tweets/:id/delete", authRequired, tweetHandler.Delete)

	return router
}

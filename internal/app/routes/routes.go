package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorhub/internal/app/controllers"
	"github.com/yigit/mentorhub/internal/middleware"
	"github.com/yigit/mentorhub/internal/pkg/websocket"
)

// Controllers groups the handlers mounted under /api
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Mentorship *controllers.MentorshipController
	Group      *controllers.GroupController
	Forum      *controllers.ForumController
	ForumFeed  *websocket.Handler
	Stats      *controllers.StatsController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes.
// Reads are public; every write sits behind the JWT middleware.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	requireAuth := authMiddleware.JWTAuth()

	api.GET("/health", c.Health.Health)

	// --- Auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", requireAuth, c.Auth.Logout)
		auth.GET("/me", requireAuth, c.Auth.Me)
	}

	// --- Users ---
	users := api.Group("/users")
	{
		users.GET("", c.User.ListUsers)
		users.GET("/:id", c.User.GetUserByID)
		// Registration stays open
		users.POST("", c.User.CreateUser)
		users.PUT("/:id", requireAuth, c.User.UpdateUser)
		users.DELETE("/:id", requireAuth, c.User.DeleteUser)
	}

	// --- Mentorships ---
	mentorships := api.Group("/mentorships")
	{
		mentorships.GET("", c.Mentorship.ListMentorships)
		mentorships.GET("/:id", c.Mentorship.GetMentorship)
		mentorships.GET("/user/:id", c.Mentorship.ListByUser)

		protected := mentorships.Group("", requireAuth)
		protected.POST("", c.Mentorship.CreateMentorship)
		protected.POST("/apply", c.Mentorship.ApplyForMentorship)
		protected.PUT("/:id", c.Mentorship.UpdateMentorship)
		protected.DELETE("/:id", c.Mentorship.DeleteMentorship)
	}

	// --- Groups ---
	groups := api.Group("/groups")
	{
		groups.GET("", c.Group.ListGroups)
		groups.GET("/:id", c.Group.GetGroup)

		protected := groups.Group("", requireAuth)
		protected.POST("", c.Group.CreateGroup)
		protected.PUT("/:id", c.Group.UpdateGroup)
		protected.DELETE("/:id", c.Group.DeleteGroup)
	}

	// --- Group members ---
	members := api.Group("/members")
	{
		members.GET("", c.Group.ListMembers)
		members.GET("/:id", c.Group.GetMember)

		protected := members.Group("", requireAuth)
		protected.POST("", c.Group.AddMember)
		protected.PUT("/:id", c.Group.UpdateMember)
		protected.DELETE("/:id", c.Group.RemoveMember)
	}

	// --- Forum ---
	forum := api.Group("/forum")
	{
		forum.GET("/threads", c.Forum.ListThreads)
		forum.GET("/thread/:id", c.Forum.GetThread)
		forum.GET("/reply", c.Forum.ListReplies)
		forum.GET("/reply/:id", c.Forum.GetReply)
		if c.ForumFeed != nil {
			forum.GET("/ws", c.ForumFeed.HandleConnection)
		}

		protected := forum.Group("", requireAuth)
		protected.POST("/thread", c.Forum.CreateThread)
		protected.DELETE("/thread/:id", c.Forum.DeleteThread)
		protected.POST("/reply", c.Forum.CreateReply)
		protected.DELETE("/reply/:id", c.Forum.DeleteReply)
	}

	// --- Stats ---
	stats := api.Group("/stats")
	{
		stats.GET("/overview", c.Stats.Overview)
		stats.GET("/top-mentors", c.Stats.TopMentors)
		stats.GET("/recent-activity", c.Stats.RecentActivity)
	}

	router.NoRoute(middleware.NotFoundHandler)
}

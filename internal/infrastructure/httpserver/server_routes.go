package httpserver

import "github.com/labstack/echo/v4"

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	// Public read API plus the comment write path.
	api := s.echo.Group("/api")
	posts := api.Group("/posts")
	posts.GET("", s.listPosts)
	posts.GET("/popular", s.popularPosts)
	posts.GET("/:idOrSlug", s.getPost)
	posts.GET("/:id/views", s.getViews)
	posts.POST("/:id/views", s.incrementViews)
	posts.GET("/:id/related", s.relatedPosts)
	posts.GET("/:id/comments", s.listComments)
	posts.POST("/:id/comments", s.addComment, s.middleware.RateLimit.LimitComments())

	// Locale-prefixed page data for the site frontend.
	pages := s.echo.Group("/:locale")
	pages.GET("/posts", s.postListPage)
	pages.GET("/posts/:slug", s.postPage)

	// Admin surface, Basic auth. Mounted on both the bare prefix and the
	// API prefix so every admin path passes the gate.
	s.registerAdminRoutes(s.echo.Group("/admin", s.middleware.AdminAuth.RequireAdmin()))
	s.registerAdminRoutes(api.Group("/admin", s.middleware.AdminAuth.RequireAdmin()))

	// Scheduled triggers, shared bearer secret.
	cron := api.Group("/cron", s.middleware.CronAuth.RequireCronSecret())
	cron.POST("/generate-daily-posts", s.cronGenerateDailyPosts)
	cron.POST("/youtube-sync", s.cronYouTubeSync)
	cron.POST("/publish-scheduled", s.cronPublishScheduled)
}

// registerAdminRoutes mounts the admin operations on g. The RouteNotFound
// entries keep unknown admin paths behind the auth gate: credentials are
// checked before the 404, and the group's static routes take priority over
// the public /:locale wildcard.
func (s *Server) registerAdminRoutes(g *echo.Group) {
	g.GET("/posts", s.adminListPosts)
	g.POST("/posts", s.adminCreatePost)
	g.GET("/posts/:id", s.adminGetPost)
	g.PUT("/posts/:id", s.adminUpdatePost)
	g.DELETE("/posts/:id", s.adminDeletePost)
	g.POST("/posts/:id/publish", s.adminPublishPost)
	g.POST("/generate", s.adminGeneratePost)
	g.POST("/generate/batch", s.adminGenerateBatch)
	g.POST("/videos/:id/convert", s.adminConvertVideo)
	g.POST("/reclassify-languages", s.adminReclassifyLanguages)
	g.RouteNotFound("", echo.NotFoundHandler)
	g.RouteNotFound("/*", echo.NotFoundHandler)
}

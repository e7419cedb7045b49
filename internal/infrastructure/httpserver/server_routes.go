package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", metricsEndpoint)

	s.echo.GET("/status", s.getStatus)
	s.echo.GET("/stats", s.getStats)
	s.echo.GET("/report", s.getReport)

	s.echo.POST("/users", s.createUser)
	s.echo.GET("/connect", s.connect)

	// Route-level so unknown paths still 404 instead of hitting the token check.
	requireToken := s.middleware.Token.RequireToken()
	s.echo.GET("/disconnect", s.disconnect, requireToken)
	s.echo.GET("/users/me", s.getMe, requireToken)
}

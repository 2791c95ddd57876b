package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/", s.app.PageHandler.ServeDashboard)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Portfolio API
	mux.HandleFunc("/api/portfolio", s.app.PortfolioHandler.ServeCollection)
	mux.HandleFunc("/api/portfolio/refresh", s.app.PortfolioHandler.ServeRefresh)
	mux.HandleFunc("/api/portfolio/metrics", s.app.PortfolioHandler.ServeMetrics)
	mux.HandleFunc("/api/portfolio/", s.app.PortfolioHandler.ServeItem)
	mux.HandleFunc("/api/details", s.app.DetailsHandler.ServeHTTP)

	// Insights API
	mux.HandleFunc("/api/insights", s.app.InsightsHandler.ServeIndex)
	mux.HandleFunc("/api/insights/refresh", s.app.InsightsHandler.ServeRefresh)
	mux.HandleFunc("/api/insights/", s.app.InsightsHandler.ServeChart)

	// Service routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}

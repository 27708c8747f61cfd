package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	generate_report "paysage-backend/http-server/generate-report"
	importprojects "paysage-backend/http-server/import-projects"
	getprojects "paysage-backend/http-server/projects/get"
	saveprojects "paysage-backend/http-server/projects/save"
	upprojects "paysage-backend/http-server/projects/update"
	getstats "paysage-backend/http-server/stats/get"
	getteams "paysage-backend/http-server/teams/get"
	saveteams "paysage-backend/http-server/teams/save"
	getworklogs "paysage-backend/http-server/worklogs/get"
	saveworklogs "paysage-backend/http-server/worklogs/save"
	upworklogs "paysage-backend/http-server/worklogs/update"
	"paysage-backend/internal/config"
	"paysage-backend/internal/middleware/auth"
	"paysage-backend/internal/service/export"
	"paysage-backend/internal/service/importer"
	"paysage-backend/internal/service/stats"
	"paysage-backend/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage,
	statsService *stats.Service, exportService *export.Service, importService *importer.Service) *chi.Mux {

	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.FrontendOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// fiches de suivi
	router.Get("/api/worklogs", getworklogs.GetWorkLogs(log, storage))
	router.Get("/api/worklogs/{id}", getworklogs.GetWorkLog(log, storage))
	router.Post("/api/worklogs", saveworklogs.SaveWorkLog(log, storage))
	router.Put("/api/worklogs/{id}", upworklogs.UpdateWorkLog(log, storage))
	router.Delete("/api/worklogs/{id}", upworklogs.DeleteWorkLog(log, storage))
	router.Put("/api/worklogs/{id}/invoiced", upworklogs.SetInvoiced(log, storage))

	// chantiers
	router.Get("/api/projects", getprojects.GetProjects(log, storage))
	router.Get("/api/projects/{id}", getprojects.GetProject(log, storage))
	router.Post("/api/projects", saveprojects.SaveProject(log, storage))
	router.Put("/api/projects/{id}", upprojects.UpdateProject(log, storage))
	router.Post("/api/projects/{id}/archive", upprojects.ArchiveProject(log, storage, true))
	router.Post("/api/projects/{id}/unarchive", upprojects.ArchiveProject(log, storage, false))
	router.Post("/api/projects/import", importprojects.ImportProjects(log, importService))

	// équipes
	router.Get("/api/teams", getteams.GetTeams(log, storage))
	router.Post("/api/teams", saveteams.SaveTeam(log, storage))
	router.Put("/api/teams/{id}", saveteams.UpdateTeam(log, storage))

	// statistiques
	router.Get("/api/stats/dashboard", getstats.GetDashboard(log, statsService))
	router.Get("/api/stats/projects/{id}", getstats.GetProjectDashboard(log, statsService))
	router.Get("/api/stats/teams", getstats.GetTeamStats(log, statsService))
	router.Get("/api/stats/personnel", getstats.GetPersonnelStats(log, statsService))

	// rapports
	router.Get("/api/report/worklogs/{format}", generate_report.GenerateWorkLogReport(log, exportService))
	router.Get("/api/report/projects/{format}", generate_report.GenerateProjectReport(log, exportService))

	// admin
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/teams", saveteams.SaveTeam(log, storage))
	adminRouter.Put("/teams/{id}", saveteams.UpdateTeam(log, storage))
	adminRouter.Get("/projects", getprojects.GetProjects(log, storage))
	adminRouter.Post("/projects/{id}/archive", upprojects.ArchiveProject(log, storage, true))

	router.Mount("/api/admin", adminRouter)

	// static SPA build, when present
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); err == nil {
		fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

		router.Handle("/assets/*", fileServer)
		router.Handle("/js/*", fileServer)
		router.Handle("/css/*", fileServer)
		router.Handle("/img/*", fileServer)

		// SPA fallback: unknown paths go to index.html
		router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			path := filepath.Join(frontendDir, r.URL.Path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
			http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
		})
	}

	return router
}

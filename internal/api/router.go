package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

const requestsPerSecond = 50

// NewRouter wires the HTTP surface. Admin routes sit behind RequireAdmin;
// invite verification and student onboarding are reachable without a
// session so invite links work.
func NewRouter(handler *Handler, provider IdentityProvider, corsOrigins []string, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(httprate.LimitByIP(requestsPerSecond, time.Second))
	router.Use(RequestLogger(logger))

	router.Get("/health", handler.health)

	router.Route("/api", func(r chi.Router) {
		r.Get("/invites/{token}", handler.verifyInvite)
		r.Post("/invites/claim", handler.claimInvite)
		r.Post("/onboard/{batchID}", handler.onboardStudent)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(provider, logger))

			r.Post("/slots", handler.createSlot)
			r.Put("/slots/{slotID}", handler.updateSlot)
			r.Delete("/slots/{slotID}", handler.deleteSlot)

			r.Get("/batches", handler.listBatches)
			r.Post("/batches", handler.createBatch)
			r.Get("/batches/{batchID}", handler.getBatch)
			r.Put("/batches/{batchID}", handler.updateBatch)
			r.Patch("/batches/{batchID}/active", handler.setBatchActive)
			r.Get("/batches/{batchID}/delete-preview", handler.previewBatchDelete)
			r.Delete("/batches/{batchID}", handler.deleteBatch)
			r.Get("/batches/{batchID}/timetable", handler.batchTimetable)
			r.Get("/batches/{batchID}/timetable/image", handler.batchTimetableImage)
			r.Get("/batches/{batchID}/timeline", handler.batchTimeline)
			r.Get("/batches/{batchID}/students", handler.listStudents)

			r.Get("/faculties", handler.listFaculties)
			r.Post("/faculties", handler.addFaculty)
			r.Get("/faculties/{facultyID}", handler.getFaculty)
			r.Delete("/faculties/{facultyID}", handler.removeFaculty)
			r.Get("/faculties/{facultyID}/timetable", handler.facultyTimetable)
			r.Get("/faculties/{facultyID}/timeline", handler.facultyTimeline)

			r.Delete("/students", handler.removeStudents)

			r.Post("/broadcasts", handler.sendBroadcast)
		})
	})

	return router
}

package httpapi

import "net/http"

func handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, withRoute(pattern, fn))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	handle(mux, "GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", withRoute("GET /metrics", metrics))
	}
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /v1/profiles/{profileID}/metrics", handler.GetProfileMetrics)
	handle(mux, "GET /v1/profiles/{profileID}/potential", handler.GetProfilePotential)
	handle(mux, "GET /v1/potentials", handler.ListPotentials)
	handle(mux, "GET /v1/careers", handler.ListCareers)
	handle(mux, "GET /v1/careers/{playerKey}", handler.GetCareer)
}

func registerCandidateRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /v1/candidates", handler.ListCandidates)
	handle(mux, "GET /v1/candidates/stats", handler.CandidateStats)
	handle(mux, "POST /v1/candidates/{candidateID}/validation", handler.ValidateCandidate)
}

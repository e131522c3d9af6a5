package dating

import (
	"github.com/gorilla/mux"
	"github.com/imadgeboyega/kiekky-matching/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Compatibility
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")
	api.HandleFunc("/compatibility/{userId}/analysis", handler.GetMatchAnalysis).Methods("GET")
	api.HandleFunc("/compatibility/{userId}/insights", handler.GetMatchInsights).Methods("GET")
	api.HandleFunc("/profile/analysis", handler.AnalyzeOwnProfile).Methods("GET")
	api.HandleFunc("/discover", handler.Discover).Methods("GET")

	// Views & taste
	api.HandleFunc("/views", handler.RecordView).Methods("POST")
	api.HandleFunc("/taste", handler.GetTasteProfile).Methods("GET")
	api.HandleFunc("/taste", handler.ResetTasteProfile).Methods("DELETE")
	api.HandleFunc("/taste/refresh", handler.RefreshTasteProfile).Methods("POST")
	api.HandleFunc("/taste/match/{userId}", handler.MatchesTasteProfile).Methods("GET")

	// Hotpicks
	api.HandleFunc("/hotpicks", handler.GetHotpicks).Methods("GET")
	api.HandleFunc("/hotpicks/generate", handler.GenerateHotpicks).Methods("POST")

	// Realtime
	if hub != nil {
		api.HandleFunc("/ws", hub.ServeWS).Methods("GET")
	}
}

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yatralabs/yatra-server/internal/advisory"
	"github.com/yatralabs/yatra-server/internal/assistant"
	"github.com/yatralabs/yatra-server/internal/domain"
	"github.com/yatralabs/yatra-server/internal/provider"
	"github.com/yatralabs/yatra-server/internal/store"
	"github.com/yatralabs/yatra-server/internal/translate"
)

// ChatService answers chat turns.
type ChatService interface {
	Chat(ctx context.Context, req assistant.ChatRequest) *assistant.ChatResponse
}

// RouteOptimizer computes timed itineraries.
type RouteOptimizer interface {
	Optimize(ctx context.Context, origin domain.Coordinate, stops []domain.Stop) (*domain.Itinerary, error)
}

// TranslationService translates text best-effort.
type TranslationService interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// WeatherService looks up current conditions and forecasts.
type WeatherService interface {
	Current(ctx context.Context, q provider.WeatherQuery) (*provider.Observation, error)
	Forecast(ctx context.Context, q provider.WeatherQuery) ([]provider.ForecastPoint, error)
}

// PlacesService looks up nearby points of interest.
type PlacesService interface {
	Nearby(ctx context.Context, coord domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error)
}

// TravelHandler serves the travel orchestrator endpoints.
type TravelHandler struct {
	chat         ChatService
	optimizer    RouteOptimizer
	translator   TranslationService
	weather      WeatherService
	places       PlacesService
	repo         store.Repository
	historyLimit int
}

// NewTravelHandler creates the handler with its collaborators.
func NewTravelHandler(chat ChatService, optimizer RouteOptimizer, translator TranslationService,
	weather WeatherService, places PlacesService, repo store.Repository, historyLimit int) *TravelHandler {
	return &TravelHandler{
		chat:         chat,
		optimizer:    optimizer,
		translator:   translator,
		weather:      weather,
		places:       places,
		repo:         repo,
		historyLimit: historyLimit,
	}
}

// RegisterRoutes registers all travel endpoints on the router.
func (h *TravelHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.handleChat)
		r.Post("/route/optimize", h.handleOptimizeRoute)
		r.Get("/route/history", h.handleRouteHistory)
		r.Post("/translate", h.handleTranslate)
		r.Get("/phrases", h.handlePhrases)
		r.Get("/weather", h.handleWeather)
		r.Get("/places", h.handlePlaces)
	})
}

func (h *TravelHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	JSON(w, http.StatusOK, h.chat.Chat(r.Context(), req))
}

type optimizeRouteRequest struct {
	SessionID string            `json:"session_id"`
	Origin    domain.Coordinate `json:"origin"`
	Stops     []domain.Stop     `json:"stops"`
}

func (h *TravelHandler) handleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var req optimizeRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for i := range req.Stops {
		if req.Stops[i].EstimatedStayMinutes <= 0 {
			req.Stops[i].EstimatedStayMinutes = domain.DefaultStayMinutes
		}
	}

	itinerary, err := h.optimizer.Optimize(r.Context(), req.Origin, req.Stops)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	record := &domain.SavedItinerary{SessionID: req.SessionID, Itinerary: *itinerary}
	if err := h.repo.SaveItinerary(r.Context(), record); err != nil {
		// History is a convenience; the computed itinerary still goes out.
		slog.Warn("failed to save itinerary", "session_id", req.SessionID, "error", err)
	}

	JSON(w, http.StatusOK, itinerary)
}

func (h *TravelHandler) handleRouteHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListItineraries(r.Context(), r.URL.Query().Get("session_id"), h.historyLimit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list itineraries")
		return
	}
	if records == nil {
		records = []*domain.SavedItinerary{}
	}
	JSON(w, http.StatusOK, map[string]any{"itineraries": records})
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

func (h *TravelHandler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		Error(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "hi"
	}

	translated, err := h.translator.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{
		"translated_text": translated,
		"original_text":   req.Text,
		"target_language": req.TargetLanguage,
	})
}

func (h *TravelHandler) handlePhrases(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	JSON(w, http.StatusOK, map[string]any{
		"phrases":         translate.Phrases(lang),
		"english_phrases": translate.Phrases(translate.SourceLanguage),
	})
}

func (h *TravelHandler) handleWeather(w http.ResponseWriter, r *http.Request) {
	query, ok := weatherQueryFromRequest(r)
	if !ok {
		Error(w, http.StatusBadRequest, "either coordinates (lat, lon) or city is required")
		return
	}

	obs, err := h.weather.Current(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Forecast is an enhancement; current conditions alone are a valid answer.
	forecast, err := h.weather.Forecast(r.Context(), query)
	if err != nil {
		slog.Warn("forecast lookup failed", "error", err)
		forecast = nil
	}

	advice := advisory.Advise(&obs.Snapshot)
	JSON(w, http.StatusOK, map[string]any{
		"current":            obs.Snapshot,
		"advice":             advice,
		"best_time_to_visit": advice.Verdict,
		"travel_suggestion":  advice.Suggestion,
		"forecast":           forecast,
		"location": map[string]any{
			"city":    obs.City,
			"country": obs.Country,
			"lat":     obs.Coord.Lat,
			"lon":     obs.Coord.Lon,
		},
	})
}

func (h *TravelHandler) handlePlaces(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		Error(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	radius, _ := strconv.Atoi(r.URL.Query().Get("radius"))

	places, err := h.places.Nearby(r.Context(), domain.Coordinate{Lat: lat, Lon: lon}, radius, r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	JSON(w, http.StatusOK, map[string]any{"results": places})
}

func weatherQueryFromRequest(r *http.Request) (provider.WeatherQuery, bool) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr == nil && lonErr == nil {
		return provider.WeatherQuery{Coord: &domain.Coordinate{Lat: lat, Lon: lon}}, true
	}
	if city := q.Get("city"); city != "" {
		return provider.WeatherQuery{City: city}, true
	}
	return provider.WeatherQuery{}, false
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hotel-optimizer-go/internal/dataset"
	"hotel-optimizer-go/internal/forecast"
	"hotel-optimizer-go/internal/insights"
	"hotel-optimizer-go/internal/logger"
	"hotel-optimizer-go/internal/recommender"
	"hotel-optimizer-go/internal/risk"
	"hotel-optimizer-go/internal/snapshot"
	"hotel-optimizer-go/internal/types"
)

type recommendPayload struct {
	types.RecommendationRequest
	IncludeCancellationRisk bool   `json:"include_cancellation_risk,omitempty"`
	MarketSegment           string `json:"market_segment,omitempty"`
	LeadTime                int    `json:"lead_time,omitempty"`
}

type cancellationPayload struct {
	HotelType     string `json:"hotel_type"`
	MarketSegment string `json:"market_segment"`
	LeadTime      int    `json:"lead_time"`
}

type overbookingPayload struct {
	HotelType             string `json:"hotel_type"`
	ArrivalMonth          string `json:"arrival_month"`
	MarketSegment         string `json:"market_segment,omitempty"`
	IsRepeatedGuest       int    `json:"is_repeated_guest,omitempty"`
	PreviousCancellations int    `json:"previous_cancellations,omitempty"`
}

type fairnessPayload struct {
	HotelType    string  `json:"hotel_type"`
	ArrivalMonth string  `json:"arrival_month"`
	CurrentPrice float64 `json:"current_price"`
	HotelClass   float64 `json:"hotel_class,omitempty"`
}

type windowPayload struct {
	HotelType    string `json:"hotel_type"`
	ArrivalMonth string `json:"arrival_month"`
	MinSamples   int    `json:"min_samples,omitempty"`
}

type forecastPayload struct {
	City        string  `json:"city"`
	HotelClass  float64 `json:"hotel_class,omitempty"`
	CheckInDate string  `json:"check_in_date,omitempty"`
	HorizonDays int     `json:"horizon_days,omitempty"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "hotel-optimizer-go").Info("starting service")

	dataDir := envOr("DATA_DIR", "data")
	src := dataset.FileSource{Dir: dataDir}

	log.WithField("data_dir", dataDir).Info("building snapshot")
	snap, err := snapshot.Build(src)
	if err != nil {
		log.WithError(err).Fatal("failed to build snapshot")
	}
	store := snapshot.NewStore(snap)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/meta/cities", func(w http.ResponseWriter, r *http.Request) {
		s := store.Current()
		writeJSON(w, map[string]interface{}{"count": len(s.Cities), "cities": s.Cities})
	})

	mux.HandleFunc("/meta/stats", func(w http.ResponseWriter, r *http.Request) {
		s := store.Current()
		writeJSON(w, map[string]interface{}{
			"candidates":       len(s.Candidates),
			"review_summaries": s.ReviewCount,
			"bookings":         s.BookingCount,
			"has_city":         len(s.Cities) > 0,
			"has_price_band":   len(s.Candidates) > 0,
			"built_at":         s.BuiltAt,
		})
	})

	mux.HandleFunc("/recommend", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "recommend")
		var p recommendPayload
		if !decode(w, r, &p) {
			return
		}
		reqLog.WithFields(map[string]interface{}{
			"city": p.City, "limit": p.Limit,
		}).Info("recommendation request")

		s := store.Current()
		ranked := recommender.Recommend(s.Candidates, p.RecommendationRequest)

		var cancellation *types.CancellationRisk
		if p.IncludeCancellationRisk {
			hotelType := p.HotelType
			if hotelType == "" {
				hotelType = s.ModalHotelType
			}
			if res, ok := risk.EstimateCancellation(s.Tables.Cancellation, hotelType, p.MarketSegment, p.LeadTime); ok {
				cancellation = &res
			}
		}

		writeJSON(w, map[string]interface{}{
			"count":             len(ranked),
			"results":           ranked,
			"cancellation_risk": cancellation,
		})
	})

	mux.HandleFunc("/risk/cancellation", func(w http.ResponseWriter, r *http.Request) {
		var p cancellationPayload
		if !decode(w, r, &p) {
			return
		}
		s := store.Current()
		res, ok := risk.EstimateCancellation(s.Tables.Cancellation, p.HotelType, p.MarketSegment, p.LeadTime)
		writeResult(w, res, ok)
	})

	mux.HandleFunc("/risk/overbooking", func(w http.ResponseWriter, r *http.Request) {
		var p overbookingPayload
		if !decode(w, r, &p) {
			return
		}
		s := store.Current()
		res, ok := risk.EstimateOverbooking(s.Tables.Overbooking, p.HotelType, p.ArrivalMonth, p.MarketSegment, risk.Adjustments{
			IsRepeatedGuest:       p.IsRepeatedGuest == 1,
			PreviousCancellations: p.PreviousCancellations,
		})
		writeResult(w, res, ok)
	})

	mux.HandleFunc("/advice/price_fairness", func(w http.ResponseWriter, r *http.Request) {
		var p fairnessPayload
		if !decode(w, r, &p) {
			return
		}
		s := store.Current()
		res, ok := insights.EstimateFairness(s.Tables.Fairness, p.HotelType, p.ArrivalMonth, p.CurrentPrice, p.HotelClass)
		writeResult(w, res, ok)
	})

	mux.HandleFunc("/advice/best_booking_window", func(w http.ResponseWriter, r *http.Request) {
		var p windowPayload
		if !decode(w, r, &p) {
			return
		}
		s := store.Current()
		res := insights.BestBookingWindow(s.Tables.Window, p.HotelType, p.ArrivalMonth, p.MinSamples)
		writeResult(w, res, true)
	})

	mux.HandleFunc("/forecast/signal", func(w http.ResponseWriter, r *http.Request) {
		var p forecastPayload
		if !decode(w, r, &p) {
			return
		}
		s := store.Current()
		res := forecast.Signal(s.Series, p.HorizonDays, p.City, p.HotelClass)
		writeResult(w, res, true)
	})

	mux.HandleFunc("/admin/reload", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "reload")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		reqLog.Info("admin reload requested")
		next, err := store.Reload(src)
		if err != nil {
			reqLog.WithError(err).Error("reload failed")
			http.Error(w, "reload failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"status":     "reloaded",
			"candidates": len(next.Candidates),
			"bookings":   next.BookingCount,
			"built_at":   next.BuiltAt,
		})
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return false
	}
	return true
}

// writeResult wraps estimator outcomes the way the dashboard expects: a
// miss is {"result": null}, never an error status.
func writeResult(w http.ResponseWriter, v interface{}, ok bool) {
	if !ok {
		writeJSON(w, map[string]interface{}{"result": nil})
		return
	}
	writeJSON(w, map[string]interface{}{"result": v})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Component("api").WithError(err).Error("failed to write response")
	}
}

package handler

import (
	"time"

	"safeher/internal/location/models"
	routinehandler "safeher/internal/routine/handler"
)

// AnalyzeResponse is the HTTP response for POST /analyze.
// Routine is null when the routine lookup failed.
type AnalyzeResponse struct {
	RiskLevel      string                        `json:"risk_level"`
	Reason         string                        `json:"reason"`
	Time           string                        `json:"time"`
	LocationLogged bool                          `json:"location_logged"`
	Routine        *routinehandler.CheckResponse `json:"routine"`
}

type LocationResponse struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	AccuracyM  float64   `json:"accuracy"`
	RecordedAt time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	Username  string             `json:"username"`
	Locations []LocationResponse `json:"locations"`
	Count     int                `json:"count"`
}

func FromAnalysis(a *models.Analysis) *AnalyzeResponse {
	resp := &AnalyzeResponse{
		RiskLevel:      string(a.Risk.Level),
		Reason:         a.Risk.Reason,
		Time:           a.At.Format("15:04"),
		LocationLogged: a.LocationLogged,
	}
	if a.Routine != nil {
		resp.Routine = routinehandler.FromResult(a.Routine)
	}
	return resp
}

func FromRecord(r *models.Record) LocationResponse {
	return LocationResponse{
		Lat:        r.Point.Lat,
		Lng:        r.Point.Lon,
		AccuracyM:  r.AccuracyM,
		RecordedAt: r.RecordedAt,
	}
}

func FromHistory(username string, records []models.Record) *HistoryResponse {
	out := make([]LocationResponse, 0, len(records))
	for i := range records {
		out = append(out, FromRecord(&records[i]))
	}
	return &HistoryResponse{Username: username, Locations: out, Count: len(out)}
}

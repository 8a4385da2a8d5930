package handler

import (
	"time"

	"safeher/internal/routine/models"
)

// RoutineResponse is the HTTP shape of a stored routine.
type RoutineResponse struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Title         string    `json:"title"`
	TimeFrom      string    `json:"time_from"`
	TimeTo        string    `json:"time_to"`
	WrapsMidnight bool      `json:"wraps_midnight"`
	Location      string    `json:"location"`
	Days          string    `json:"days"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoutineListResponse is the HTTP response for GET /routines/{username}.
type RoutineListResponse struct {
	Username string            `json:"username"`
	Routines []RoutineResponse `json:"routines"`
	Count    int               `json:"count"`
}

// ExpectedResponse tells the client where the user should be.
type ExpectedResponse struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	TimeFrom string `json:"time_from"`
	TimeTo   string `json:"time_to"`
}

// CheckResponse is the HTTP response for POST /routine/check.
type CheckResponse struct {
	Status      string            `json:"status"`
	Routine     *RoutineResponse  `json:"routine"`
	DistanceKm  *float64          `json:"distance_km"`
	ThresholdKm float64           `json:"threshold_km"`
	Expected    *ExpectedResponse `json:"expected,omitempty"`
	CheckedAt   time.Time         `json:"checked_at"`
}

func FromRoutine(r *models.Routine) RoutineResponse {
	return RoutineResponse{
		ID:            int64(r.ID),
		Username:      r.Username.String(),
		Title:         r.Title,
		TimeFrom:      r.Window.From.String(),
		TimeTo:        r.Window.To.String(),
		WrapsMidnight: r.Window.WrapsMidnight(),
		Location:      r.Location,
		Days:          r.Days.String(),
		CreatedAt:     r.CreatedAt,
	}
}

func FromRoutines(username string, routines []models.Routine) *RoutineListResponse {
	out := make([]RoutineResponse, 0, len(routines))
	for i := range routines {
		out = append(out, FromRoutine(&routines[i]))
	}
	return &RoutineListResponse{
		Username: username,
		Routines: out,
		Count:    len(out),
	}
}

// FromResult converts a deviation result to its HTTP shape.
func FromResult(result *models.DeviationResult) *CheckResponse {
	resp := &CheckResponse{
		Status:      string(result.Status),
		DistanceKm:  result.DistanceKm,
		ThresholdKm: result.ThresholdKm,
		CheckedAt:   result.CheckedAt,
	}
	if result.Routine != nil {
		r := FromRoutine(result.Routine)
		resp.Routine = &r
	}
	if result.Expected != nil {
		resp.Expected = &ExpectedResponse{
			Title:    result.Expected.Title,
			Location: result.Expected.Location,
			TimeFrom: result.Expected.From.String(),
			TimeTo:   result.Expected.To.String(),
		}
	}
	return resp
}

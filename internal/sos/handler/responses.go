package handler

import (
	"time"

	"safeher/internal/sos/models"
)

type TriggerResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	EventID   string    `json:"event_id"`
	SOSLogged bool      `json:"sos_logged"`
	Time      time.Time `json:"timestamp"`
}

// AlertFailedResponse is the 502 body: the alert did not go out but the event
// may still have been recorded.
type AlertFailedResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	SOSLogged        bool   `json:"sos_logged"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	TriggeredAt time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	Username string          `json:"username"`
	Events   []EventResponse `json:"events"`
	Count    int             `json:"count"`
}

func FromOutcome(o *models.Outcome) *TriggerResponse {
	return &TriggerResponse{
		Status:    "Success",
		Message:   "SOS broadcasted",
		EventID:   o.Event.ID.String(),
		SOSLogged: o.Logged,
		Time:      o.Event.TriggeredAt,
	}
}

func FromEvents(username string, events []models.Event) *HistoryResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp := EventResponse{ID: e.ID.String(), Name: e.Name, TriggeredAt: e.TriggeredAt}
		if e.Point != nil {
			lat, lng := e.Point.Lat, e.Point.Lon
			resp.Lat, resp.Lng = &lat, &lng
		}
		out = append(out, resp)
	}
	return &HistoryResponse{Username: username, Events: out, Count: len(out)}
}

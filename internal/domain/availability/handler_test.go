package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func newTestHandler(t *testing.T, snapshots *fakeSnapshotSource) *Handler {
	t.Helper()
	return NewHandler(newTestService(t, snapshots))
}

func doCheck(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandlerCheckOK(t *testing.T) {
	h := newTestHandler(t, &fakeSnapshotSource{})

	body := `{
		"branch_id": "` + uuid.New().String() + `",
		"date": "2026-09-01",
		"time": "14:00",
		"participants": 8,
		"type": "GAME",
		"game_area": "ACTIVE"
	}`
	rec := doCheck(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool          `json:"success"`
		Data    CheckResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success || !envelope.Data.Available {
		t.Fatalf("unexpected response: %+v", envelope)
	}
	if envelope.Data.StartDatetime == nil {
		t.Error("expected the planned window in the response")
	}
}

func TestHandlerCheckValidation(t *testing.T) {
	h := newTestHandler(t, &fakeSnapshotSource{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", `date=tomorrow`, http.StatusBadRequest},
		{"missing fields", `{}`, http.StatusUnprocessableEntity},
		{"bad type", `{"branch_id": "` + uuid.New().String() + `", "date": "2026-09-01", "time": "14:00", "participants": 8, "type": "WALK_IN"}`, http.StatusUnprocessableEntity},
		{"bad branch uuid", `{"branch_id": "abc", "date": "2026-09-01", "time": "14:00", "participants": 8, "type": "GAME", "game_area": "ACTIVE"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doCheck(t, h, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandlerCheckUnavailable(t *testing.T) {
	snapshots := &fakeSnapshotSource{bookings: []Booking{activeBooking(t, 15, 14, 0, 60)}}
	h := newTestHandler(t, snapshots)

	body := `{
		"branch_id": "` + uuid.New().String() + `",
		"date": "2026-09-01",
		"time": "14:15",
		"participants": 8,
		"type": "GAME",
		"game_area": "ACTIVE"
	}`
	rec := doCheck(t, h, body)
	// An unavailable slot is a valid answer, not an HTTP error
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data CheckResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Available {
		t.Fatal("expected unavailable")
	}
	if envelope.Data.Reason != string(ReasonCapacityExceeded) {
		t.Errorf("reason = %q", envelope.Data.Reason)
	}
	if envelope.Data.Alternatives == nil {
		t.Error("expected alternatives in the response")
	}
}

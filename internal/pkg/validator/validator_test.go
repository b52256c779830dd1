package validator

import "testing"

type checkPayload struct {
	BookingType string `json:"booking_type" validate:"required,booking_type"`
	GameArea    string `json:"game_area" validate:"omitempty,game_area"`
	EventType   string `json:"event_type" validate:"omitempty,event_type"`
}

func TestCustomValidations(t *testing.T) {
	tests := []struct {
		name    string
		payload checkPayload
		wantErr string
	}{
		{"valid game", checkPayload{BookingType: "GAME", GameArea: "LASER"}, ""},
		{"valid event", checkPayload{BookingType: "EVENT", EventType: "event_mix"}, ""},
		{"missing type", checkPayload{}, "booking_type"},
		{"bad type", checkPayload{BookingType: "game"}, "booking_type"},
		{"bad area", checkPayload{BookingType: "GAME", GameArea: "WATER"}, "game_area"},
		{"bad event type", checkPayload{BookingType: "EVENT", EventType: "party"}, "event_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.payload)
			if tt.wantErr == "" {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if errs == nil {
				t.Fatal("expected a validation error")
			}
			// Error keys use the JSON field names
			if _, ok := errs[tt.wantErr]; !ok {
				t.Fatalf("expected an error on %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

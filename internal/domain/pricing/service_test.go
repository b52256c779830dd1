package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
)

var (
	hallAID = uuid.New()
	hallBID = uuid.New()
)

type fakeBranches struct {
	settings *branch.Settings
	rooms    []branch.EventRoom
	err      error
}

func (f *fakeBranches) Settings(ctx context.Context, branchID uuid.UUID) (*branch.Settings, error) {
	return f.settings, f.err
}

func (f *fakeBranches) EventRooms(ctx context.Context, branchID uuid.UUID) ([]branch.EventRoom, error) {
	return f.rooms, nil
}

func testBranches() *fakeBranches {
	return &fakeBranches{
		settings: &branch.Settings{
			GamePricePerPerson: 80,
			BraceletPrice:      10,
			EventPrice15To29:   120,
			EventPrice30Plus:   100,
		},
		rooms: []branch.EventRoom{
			{ID: hallAID, Capacity: 30, SortOrder: 1, Price: 1200},
			{ID: hallBID, Capacity: 50, SortOrder: 2, Price: 1800},
		},
	}
}

func TestDepositGame(t *testing.T) {
	svc := NewService(testBranches())

	tests := []struct {
		name         string
		participants int
		games        int
		wantDeposit  float64
		wantTotal    float64
	}{
		// One deposit unit per started group of six
		{"small group one game", 5, 1, 80, 400},
		{"exactly one group", 6, 1, 80, 480},
		{"two groups", 7, 1, 160, 560},
		{"two games", 12, 2, 320, 1920},
		{"games default to one", 8, 0, 160, 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Deposit(context.Background(), QuoteParams{
				Type:          availability.TypeGame,
				Participants:  tt.participants,
				NumberOfGames: tt.games,
			})
			if err != nil {
				t.Fatalf("Deposit: %v", err)
			}
			if quote.Deposit != tt.wantDeposit {
				t.Errorf("deposit = %v, want %v", quote.Deposit, tt.wantDeposit)
			}
			if quote.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", quote.Total, tt.wantTotal)
			}
		})
	}
}

func TestDepositEventTiers(t *testing.T) {
	svc := NewService(testBranches())

	// 20 participants: mid tier, cheapest fitting room is Hall A
	quote, err := svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeEvent,
		Participants: 20,
	})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if quote.PerPerson != 120 {
		t.Errorf("per person = %v, want the 15-29 tier", quote.PerPerson)
	}
	if quote.Deposit != 1200 {
		t.Errorf("deposit = %v, want Hall A's price", quote.Deposit)
	}
	if quote.Total != 20*120+1200 {
		t.Errorf("total = %v", quote.Total)
	}

	// 35 participants: large tier, only Hall B fits
	quote, err = svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeEvent,
		Participants: 35,
	})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if quote.PerPerson != 100 {
		t.Errorf("per person = %v, want the 30+ tier", quote.PerPerson)
	}
	if quote.Deposit != 1800 {
		t.Errorf("deposit = %v, want Hall B's price", quote.Deposit)
	}
}

func TestDepositEventExplicitRoom(t *testing.T) {
	svc := NewService(testBranches())

	roomID := hallBID
	quote, err := svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeEvent,
		Participants: 20,
		EventRoomID:  &roomID,
	})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if quote.Deposit != 1800 {
		t.Errorf("deposit = %v, want the requested room's price", quote.Deposit)
	}

	unknown := uuid.New()
	if _, err := svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeEvent,
		Participants: 20,
		EventRoomID:  &unknown,
	}); !errors.Is(err, ErrNoEventRoom) {
		t.Fatalf("expected ErrNoEventRoom, got %v", err)
	}
}

func TestDepositEventNoFittingRoom(t *testing.T) {
	svc := NewService(testBranches())

	_, err := svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeEvent,
		Participants: 80,
	})
	if !errors.Is(err, ErrNoEventRoom) {
		t.Fatalf("expected ErrNoEventRoom, got %v", err)
	}
}

func TestDepositSettingsError(t *testing.T) {
	branches := testBranches()
	branches.err = branch.ErrSettingsNotFound
	svc := NewService(branches)

	_, err := svc.Deposit(context.Background(), QuoteParams{
		Type:         availability.TypeGame,
		Participants: 8,
	})
	if !errors.Is(err, branch.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

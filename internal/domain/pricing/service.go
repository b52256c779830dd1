package pricing

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
)

var (
	ErrNoEventRoom = errors.New("no event room fits the party size")
)

// Participants per deposit unit: a game deposit covers one player's
// price per started group of six.
const gameDepositGroupSize = 6

// Large-party pricing kicks in at this participant count
const largePartyThreshold = 30

// BranchSource serves branch configuration and room inventory
type BranchSource interface {
	Settings(ctx context.Context, branchID uuid.UUID) (*branch.Settings, error)
	EventRooms(ctx context.Context, branchID uuid.UUID) ([]branch.EventRoom, error)
}

// Service computes price quotes and deposit amounts from branch
// configuration. Quotes are advisory; the engine never consults them.
type Service struct {
	branches BranchSource
}

// NewService creates a new pricing service
func NewService(branches BranchSource) *Service {
	return &Service{branches: branches}
}

// QuoteParams describes the booking to price
type QuoteParams struct {
	BranchID      uuid.UUID
	Type          availability.BookingType
	Participants  int
	NumberOfGames int
	EventRoomID   *uuid.UUID
}

// Quote is a price breakdown with the required deposit
type Quote struct {
	Currency       string  `json:"currency"`
	PerPerson      float64 `json:"per_person"`
	Total          float64 `json:"total"`
	Deposit        float64 `json:"deposit"`
	EventRoomPrice float64 `json:"event_room_price,omitempty"`
}

// Deposit quotes a booking and its deposit.
//
// GAME deposits charge one player's price per started group of six.
// EVENT deposits are the flat room price; the per-person rate comes
// from the party-size tier.
func (s *Service) Deposit(ctx context.Context, p QuoteParams) (*Quote, error) {
	settings, err := s.branches.Settings(ctx, p.BranchID)
	if err != nil {
		return nil, err
	}

	games := p.NumberOfGames
	if games <= 0 {
		games = 1
	}

	if p.Type == availability.TypeEvent {
		return s.eventQuote(ctx, p, settings)
	}

	perPlayer := settings.GamePricePerPerson * float64(games)
	depositUnits := int(math.Ceil(float64(p.Participants) / gameDepositGroupSize))
	return &Quote{
		Currency:  "ILS",
		PerPerson: perPlayer,
		Total:     perPlayer * float64(p.Participants),
		Deposit:   perPlayer * float64(depositUnits),
	}, nil
}

func (s *Service) eventQuote(ctx context.Context, p QuoteParams, settings *branch.Settings) (*Quote, error) {
	perPerson := settings.EventPrice15To29
	if p.Participants >= largePartyThreshold {
		perPerson = settings.EventPrice30Plus
	}

	roomPrice, err := s.eventRoomPrice(ctx, p)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Currency:       "ILS",
		PerPerson:      perPerson,
		Total:          perPerson*float64(p.Participants) + roomPrice,
		Deposit:        roomPrice,
		EventRoomPrice: roomPrice,
	}, nil
}

// eventRoomPrice resolves the room the quote is for: the requested
// room, or the first room in display order that fits the party.
func (s *Service) eventRoomPrice(ctx context.Context, p QuoteParams) (float64, error) {
	rooms, err := s.branches.EventRooms(ctx, p.BranchID)
	if err != nil {
		return 0, err
	}
	if p.EventRoomID != nil {
		for _, room := range rooms {
			if room.ID == *p.EventRoomID {
				return room.Price, nil
			}
		}
		return 0, ErrNoEventRoom
	}
	for _, room := range rooms {
		if room.Capacity >= p.Participants {
			return room.Price, nil
		}
	}
	return 0, ErrNoEventRoom
}

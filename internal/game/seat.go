package game

// SeatStatus tracks a seat's standing within the current round
type SeatStatus int

const (
	// StatusPlaying is the default: the seat is live in the round
	StatusPlaying SeatStatus = iota
	// StatusLost marks a seat that busted during its turn
	StatusLost
	// StatusSittingOut marks an occupied seat skipping the round, e.g. a
	// bankroll below the table minimum
	StatusSittingOut
)

// String returns the string representation of a seat status
func (s SeatStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLost:
		return "lost"
	case StatusSittingOut:
		return "sitting out"
	default:
		return "unknown"
	}
}

// Seat binds one optional player to a bet and a hand. Seats are created
// empty at table construction and reused across rounds.
type Seat struct {
	Player Player
	Bet    int
	Hand   Hand
	Status SeatStatus
	Reward int
}

// Occupied reports whether a player is bound to the seat
func (s *Seat) Occupied() bool {
	return s.Player != nil
}

// Live reports whether the seat participates in the current round
func (s *Seat) Live() bool {
	return s.Occupied() && s.Status == StatusPlaying
}

// SetBet records the seat's bet for the round
func (s *Seat) SetBet(value int) {
	s.Bet = value
}

// Score computes the dual totals of the seat's hand
func (s *Seat) Score() Score {
	return s.Hand.Score()
}

// DiscardHand folds the seat out of the round after a bust: the bet is
// forfeit, the hand is thrown in and the seat is marked lost.
func (s *Seat) DiscardHand() {
	s.Bet = 0
	s.Hand.Clear()
	s.Status = StatusLost
}

// SetReward credits the round's payout to the bound player's bankroll
func (s *Seat) SetReward(value int) {
	s.Reward = value
	s.Player.Credit(value)
}

// Reset prepares the seat for a new round
func (s *Seat) Reset() {
	s.Bet = 0
	s.Hand.Clear()
	s.Status = StatusPlaying
	s.Reward = 0
}

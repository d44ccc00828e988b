package game

// Pot is the chip ledger for one hand.
//
// Contributions accumulate over the whole hand while RoundBets only cover the
// current betting round. Total always equals the sum of Contributions and
// CurrentBet always equals the largest RoundBet.
type Pot struct {
	Total         uint
	Contributions []uint
	CurrentBet    uint
	RoundBets     []uint
}

// NewPot creates an empty pot for seats seats
func NewPot(seats int) *Pot {
	return &Pot{
		Contributions: make([]uint, seats),
		RoundBets:     make([]uint, seats),
	}
}

// AddSeat extends the ledger for a newly seated player
func (p *Pot) AddSeat() {
	p.Contributions = append(p.Contributions, 0)
	p.RoundBets = append(p.RoundBets, 0)
}

// AddContribution records amount chips from seat. Unknown seats are ignored.
func (p *Pot) AddContribution(seat int, amount uint) {
	if seat < 0 || seat >= len(p.Contributions) {
		return
	}
	p.Contributions[seat] += amount
	p.RoundBets[seat] += amount
	p.Total += amount
	if p.RoundBets[seat] > p.CurrentBet {
		p.CurrentBet = p.RoundBets[seat]
	}
}

// ToCall returns what seat still owes to match the current bet
func (p *Pot) ToCall(seat int) uint {
	if seat < 0 || seat >= len(p.RoundBets) || p.RoundBets[seat] >= p.CurrentBet {
		return 0
	}
	return p.CurrentBet - p.RoundBets[seat]
}

// RoundBet returns the amount seat has put in during this betting round
func (p *Pot) RoundBet(seat int) uint {
	if seat < 0 || seat >= len(p.RoundBets) {
		return 0
	}
	return p.RoundBets[seat]
}

// Contribution returns the amount seat has put in during this hand
func (p *Pot) Contribution(seat int) uint {
	if seat < 0 || seat >= len(p.Contributions) {
		return 0
	}
	return p.Contributions[seat]
}

// ResetRound clears the per-round bets between streets. The hand totals stay.
func (p *Pot) ResetRound() {
	for i := range p.RoundBets {
		p.RoundBets[i] = 0
	}
	p.CurrentBet = 0
}

// ResetHand empties the pot once it has been paid out or refunded
func (p *Pot) ResetHand() {
	p.Total = 0
	for i := range p.Contributions {
		p.Contributions[i] = 0
	}
	p.ResetRound()
}

// Clone returns a deep copy
func (p *Pot) Clone() Pot {
	return Pot{
		Total:         p.Total,
		Contributions: append([]uint(nil), p.Contributions...),
		CurrentBet:    p.CurrentBet,
		RoundBets:     append([]uint(nil), p.RoundBets...),
	}
}

package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrInsufficientCards is returned when a draw asks for more cards than remain
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck represents a deck of playing cards. Cards are drawn from the top,
// which is the end of the slice.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new ordered 52-card deck that shuffles with rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for i := 0; i < Size; i++ {
		c, _ := FromIndex(i)
		d.cards = append(d.cards, c)
	}
}

// Shuffle randomizes the order of the cards remaining in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// Draw removes n cards from the top of the deck. The deck is untouched
// when fewer than n cards remain.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(d.cards), ErrInsufficientCards)
	}
	cut := len(d.cards) - n
	drawn := make([]Card, n)
	for i := 0; i < n; i++ {
		drawn[i] = d.cards[len(d.cards)-1-i]
	}
	d.cards = d.cards[:cut]
	return drawn, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stack replaces the deck contents so that cards[0] is drawn first.
// Used to set up deterministic hands.
func (d *Deck) Stack(cards []Card) {
	d.cards = d.cards[:0]
	for i := len(cards) - 1; i >= 0; i-- {
		d.cards = append(d.cards, cards[i])
	}
}

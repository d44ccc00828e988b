// Package game implements an authoritative no-limit Texas Hold'em table.
//
// The main type is Table, which owns the seats, the pot ledger, the deck and
// the phase state machine for one table. Every rule is enforced here; callers
// only translate client intents into method calls and broadcast the result.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	t := game.NewTable(rng, game.WithStartingChips(1000))
//	alice, _ := t.AddSeat("Alice")
//	bob, _ := t.AddSeat("Bob")
//	if err := t.StartGame(); err != nil {
//	    // not enough players
//	}
//	_ = t.Bet(alice, 100)
//	_ = t.Call(bob) // round closes and the flop is dealt
//
// Every action validates before it mutates, so a returned error means the
// table is unchanged.
//
// # Hand Flow
//
// Phases run Waiting, Preflop, Flop, Turn, River, Showdown. A betting round
// closes once every seat that can still act has acted and matched the
// current bet. A bet reopens the action for everyone else. When a single
// seat remains the hand ends at once; when fewer than two seats can still
// bet the board is dealt out to showdown.
//
// There are no blinds or side pots. Ties split the pot, with odd chips going
// to the winners closest to the left of the button.
//
// # Deterministic Testing
//
// The RNG passed to NewTable drives every shuffle. WithDeckSetup exposes the
// shuffled deck before each deal so tests can stack it:
//
//	t := game.NewTable(rng, game.WithDeckSetup(func(hand int, d *deck.Deck) {
//	    d.Stack(deck.MustParseCards("AsAhKsKd2c7d9hJcQd"))
//	}))
package game

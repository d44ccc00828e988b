package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "low cards",
			input: "5h4d3c2s",
			expected: []Card{
				{Suit: Hearts, Rank: Five},
				{Suit: Diamonds, Rank: Four},
				{Suit: Clubs, Rank: Three},
				{Suit: Spades, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustParseCards(t *testing.T) {
	// Test successful parsing
	cards := MustParseCards("AsKs")
	expected := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Spades, Rank: King},
	}
	if !cardsEqual(cards, expected) {
		t.Errorf("MustParseCards() = %v, want %v", cards, expected)
	}

	// Test panic on invalid input
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Rank != b[i].Rank || a[i].Suit != b[i].Suit {
			return false
		}
	}
	return true
}

func TestCardIndexIsDense(t *testing.T) {
	t.Parallel()

	seen := make(map[int]Card, Size)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(suit, rank)
			idx := c.Index()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, Size)
			prev, dup := seen[idx]
			require.False(t, dup, "%s and %s share index %d", prev, c, idx)
			seen[idx] = c

			back, err := FromIndex(idx)
			require.NoError(t, err)
			assert.Equal(t, c, back)
		}
	}
	assert.Len(t, seen, Size)
}

func TestCardIndexLayout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, NewCard(Clubs, Two).Index())
	assert.Equal(t, 3, NewCard(Spades, Two).Index())
	assert.Equal(t, 4, NewCard(Clubs, Three).Index())
	assert.Equal(t, 51, NewCard(Spades, Ace).Index())

	_, err := FromIndex(52)
	assert.Error(t, err)
	_, err = FromIndex(-1)
	assert.Error(t, err)
}

func TestCardJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewCard(Hearts, Queen))
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"hearts","rank":"Q"}`, string(b))

	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"suit":"spades","rank":"t"}`), &c))
	assert.Equal(t, NewCard(Spades, Ten), c)

	assert.Error(t, json.Unmarshal([]byte(`{"suit":"stars","rank":"T"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"suit":"spades","rank":"10"}`), &c))

	_, err = json.Marshal(Card{})
	assert.Error(t, err, "zero rank is not a card")
}

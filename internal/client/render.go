package client

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/protocol"
)

// FormatCards renders cards with suit colours, or "--" when there are none
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := BlackCardStyle
		if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
			style = RedCardStyle
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

// RenderState prints a snapshot from the point of view of seat
func RenderState(gs protocol.GameStateData, seat int) string {
	var b strings.Builder

	header := fmt.Sprintf(" %s  pot %d  bet %d ", gs.Phase, gs.Pot, gs.CurrentBet)
	if gs.HandNumber > 0 {
		header = fmt.Sprintf(" hand %d %s", gs.HandNumber, header)
	}
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")
	fmt.Fprintf(&b, "board: %s\n", FormatCards(gs.Board))

	for _, p := range gs.Players {
		marker := "  "
		if p.ID == gs.CurrentTurn {
			marker = TurnStyle.Render("> ")
		}

		var status []string
		if p.ID == gs.Button {
			status = append(status, "button")
		}
		switch {
		case p.SittingOut:
			status = append(status, "sitting out")
		case p.IsFolded:
			status = append(status, "folded")
		case p.IsAllIn:
			status = append(status, "all-in")
		}
		if !p.Connected {
			status = append(status, "disconnected")
		}
		if p.ID == seat {
			status = append(status, "you")
		}

		line := fmt.Sprintf("%s%-12s %6d  bet %-5d %s", marker, p.Name, p.Chips, p.RoundBet, FormatCards(p.HoleCards))
		if p.HandLabel != "" {
			line += "  " + p.HandLabel
		}
		if len(status) > 0 {
			line += "  " + InfoStyle.Render("("+strings.Join(status, ", ")+")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if gs.Phase == game.Showdown {
		for _, w := range gs.Winners {
			msg := fmt.Sprintf("%s wins %d", w.Name, w.Amount)
			if w.Label != "" {
				msg += " with " + w.Label
			}
			b.WriteString(SuccessStyle.Render(msg))
			b.WriteString("\n")
		}
	} else if gs.CurrentTurn == seat && seat >= 0 {
		b.WriteString(TurnStyle.Render("your turn: bet N | call | check | fold"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderError prints an error sent by the server
func RenderError(e protocol.ErrorData) string {
	return ErrorStyle.Render(fmt.Sprintf("rejected (%s): %s", e.Code, e.Message))
}

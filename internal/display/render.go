package display

import (
	"fmt"
	"strings"

	"BlockJack/internal/game/table"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardHeight = 7
	ruleWidth  = 60
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

var (
	redSuit    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0245E"))
	blackSuit  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func suitStyle(s table.Suit) lipgloss.Style {
	if s == table.Hearts || s == table.Diamonds {
		return redSuit
	}
	return blackSuit
}

// CardArt draws one face-up card, seven lines tall.
func CardArt(c table.Card) string {
	rank := c.Rank().String()
	symbol := suitStyle(c.Suit()).Render(c.Suit().Symbol())
	lines := []string{
		"┌─────────┐",
		fmt.Sprintf("│%-2s       │", rank),
		"│         │",
		fmt.Sprintf("│    %s    │", symbol),
		"│         │",
		fmt.Sprintf("│       %2s│", rank),
		"└─────────┘",
	}
	return strings.Join(lines, "\n")
}

// CardBack draws a face-down card.
func CardBack() string {
	lines := make([]string, 0, cardHeight)
	lines = append(lines, "┌─────────┐")
	for i := 0; i < cardHeight-2; i++ {
		lines = append(lines, "│░░░░░░░░░│")
	}
	lines = append(lines, "└─────────┘")
	return strings.Join(lines, "\n")
}

// HandArt lays cards side by side. When hideSecond is set the second card is
// drawn face down.
func HandArt(cards []table.Card, hideSecond bool) string {
	if len(cards) == 0 {
		return "No cards"
	}
	arts := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			arts = append(arts, " ")
		}
		if hideSecond && i == 1 {
			arts = append(arts, CardBack())
			continue
		}
		arts = append(arts, CardArt(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, arts...)
}

// Title is the banner shown on top of the table.
func Title() string {
	return titleStyle.Render(" ♠ ♥ BLACKJACK ♦ ♣ ")
}

// handValue marks totals that still count an ace as 11, e.g. "17 (soft)".
func handValue(value int, cards []table.Card) string {
	if table.NewHand(cards...).IsSoft() {
		return fmt.Sprintf("%d (soft)", value)
	}
	return fmt.Sprint(value)
}

// Table renders a full snapshot.
func Table(snap table.Snapshot) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	b.WriteString(Title() + "\n")
	b.WriteString(rule + "\n\n")

	dealerValue := "?"
	if !snap.DealerHoleHidden {
		dealerValue = handValue(snap.DealerValue, snap.DealerHand)
	}
	b.WriteString(labelStyle.Render("DEALER'S HAND:") + "\n")
	fmt.Fprintf(&b, "Value: %s\n\n", dealerValue)
	b.WriteString(HandArt(snap.DealerHand, snap.DealerHoleHidden) + "\n\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n\n")

	b.WriteString(labelStyle.Render("YOUR HAND:") + "\n")
	fmt.Fprintf(&b, "Value: %s\n\n", handValue(snap.PlayerValue, snap.PlayerHand))
	b.WriteString(HandArt(snap.PlayerHand, false) + "\n\n")

	fmt.Fprintf(&b, "Current Bet: $%d\n", snap.CurrentBet)
	fmt.Fprintf(&b, "Balance: $%d\n", snap.PlayerBalance)
	b.WriteString(rule + "\n")
	return b.String()
}

package display

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"BlockJack/internal/game/engine"
	"BlockJack/internal/game/table"
)

const clearScreen = "\033[H\033[2J"

// Terminal is the line-based console front end. It is both the engine's
// Input and its Presenter.
type Terminal struct {
	r     *bufio.Reader
	w     io.Writer
	Clear bool // emit ANSI clear before each table render
	Pause bool // wait for Enter after bust, blackjack, dealer hits and results
}

func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{r: bufio.NewReader(r), w: w, Pause: true}
}

func (t *Terminal) Welcome(balance int) {
	fmt.Fprintln(t.w, Title())
	fmt.Fprintln(t.w, "Welcome to Blackjack!")
	fmt.Fprintf(t.w, "You start with $%d. Good luck!\n", balance)
	t.pause("Press Enter to start...")
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := t.r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) RequestBet(ctx context.Context, min, max int) (int, error) {
	fmt.Fprintf(t.w, "Enter your bet (%d-%d): $", min, max)
	line, err := t.readLine(ctx)
	if err != nil {
		return 0, err
	}
	bet, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrInvalidBet, line)
	}
	return bet, nil
}

func (t *Terminal) RequestAction(ctx context.Context) (table.Action, error) {
	fmt.Fprint(t.w, "\nDo you want to (h)it or (s)tand? ")
	line, err := t.readLine(ctx)
	if err != nil {
		return "", err
	}
	return ParseAction(line)
}

func (t *Terminal) RequestContinue(ctx context.Context) (bool, error) {
	fmt.Fprint(t.w, "\nDo you want to play another round? (y/n): ")
	line, err := t.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}

// ParseAction accepts h/s in any case.
func ParseAction(s string) (table.Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h":
		return table.Hit, nil
	case "s":
		return table.Stand, nil
	}
	return "", fmt.Errorf("%w: %q", engine.ErrInvalidAction, s)
}

func (t *Terminal) Show(ev engine.Event, snap table.Snapshot) {
	switch ev.Kind {
	case engine.EventRoundStart:
		fmt.Fprintf(t.w, "\nYour balance: $%d\n", snap.PlayerBalance)
	case engine.EventDeal, engine.EventHit, engine.EventDealerReveal:
		t.render(snap)
	case engine.EventBust, engine.EventBlackjack, engine.EventDealerHit:
		t.render(snap)
		fmt.Fprintf(t.w, "\n%s\n", ev.Message)
		t.pause("Press Enter to continue...")
	case engine.EventResult:
		t.render(snap)
		rule := strings.Repeat("=", 30)
		fmt.Fprintf(t.w, "\n%s\n           ROUND RESULTS\n%s\n", rule, rule)
		fmt.Fprintln(t.w, ev.Message)
		fmt.Fprintf(t.w, "\nYour new balance: $%d\n", snap.PlayerBalance)
		t.pause("Press Enter to continue...")
	case engine.EventDeckExhausted:
		fmt.Fprintf(t.w, "\n%s\n", ev.Message)
		t.pause("Press Enter to continue...")
	case engine.EventOutOfFunds, engine.EventNotice:
		fmt.Fprintln(t.w, ev.Message)
	case engine.EventSessionEnd:
		fmt.Fprintf(t.w, "\n%s\nThanks for playing Blackjack!\n", ev.Message)
	}
}

func (t *Terminal) render(snap table.Snapshot) {
	if t.Clear {
		fmt.Fprint(t.w, clearScreen)
	}
	fmt.Fprint(t.w, Table(snap))
}

// pause ignores read errors; a closed stdin surfaces on the next prompt.
func (t *Terminal) pause(prompt string) {
	if !t.Pause {
		return
	}
	fmt.Fprint(t.w, prompt)
	_, _ = t.r.ReadString('\n')
}

// Package game implements the Recycle Rush sorting game engine. The engine is
// pure in-memory state; persistence happens only when a finished game is
// reported to the rewards ledger.
package game

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Bin is a sorting destination.
type Bin string

const (
	BinRecycle Bin = "recycle"
	BinTrash   Bin = "trash"
	BinCompost Bin = "compost"
)

// State of a game session.
type State string

const (
	StateStart    State = "start"
	StatePlaying  State = "playing"
	StateGameOver State = "gameover"
)

const (
	startTime     = 60
	startItems    = 5
	maxLevel      = 5
	levelBonus    = 10
	endlessBonus  = 15
	endlessItems  = 8
	wrongPenalty  = 5
	wrongTimeCost = 2
)

// Item is a piece of waste to sort.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Bin  Bin    `json:"bin"`
}

// The fixed waste catalog. Greasy pizza boxes depend on locale, but compost
// is the common call.
var catalog = []Item{
	{Name: "Plastic Bottle", Bin: BinRecycle},
	{Name: "Banana Peel", Bin: BinCompost},
	{Name: "Soda Can", Bin: BinRecycle},
	{Name: "Apple Core", Bin: BinCompost},
	{Name: "Crisp Packet", Bin: BinTrash},
	{Name: "Paper", Bin: BinRecycle},
	{Name: "Glass Jar", Bin: BinRecycle},
	{Name: "Pizza Box (Greasy)", Bin: BinCompost},
	{Name: "Styrofoam", Bin: BinTrash},
	{Name: "Egg Shells", Bin: BinCompost},
	{Name: "Cardboard", Bin: BinRecycle},
	{Name: "Plastic Bag", Bin: BinTrash},
}

var (
	ErrNotPlaying  = errors.New("game is not in progress")
	ErrItemUnknown = errors.New("item not on the board")
)

// SortOutcome reports what a single sort did to the game state.
type SortOutcome struct {
	Correct      bool
	PointsDelta  int
	LeveledUp    bool
	BonusSeconds int
}

// Game is one session. Not safe for concurrent use.
type Game struct {
	state    State
	score    int
	timeLeft int
	level    int
	items    []Item
	nextID   int
	rng      *rand.Rand
}

// New creates a session in the start state. A nil rng gets a time seed.
func New(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{state: StateStart, rng: rng}
}

// Start begins (or restarts) a round.
func (g *Game) Start() {
	g.state = StatePlaying
	g.score = 0
	g.timeLeft = startTime
	g.level = 1
	g.items = nil
	g.spawn(startItems)
}

func (g *Game) spawn(count int) {
	for i := 0; i < count; i++ {
		item := catalog[g.rng.Intn(len(catalog))]
		g.nextID++
		item.ID = g.nextID
		g.items = append(g.items, item)
	}
}

// Sort places the identified item into bin and applies the scoring rules.
func (g *Game) Sort(itemID int, bin Bin) (SortOutcome, error) {
	if g.state != StatePlaying {
		return SortOutcome{}, ErrNotPlaying
	}

	idx := -1
	for i, item := range g.items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SortOutcome{}, ErrItemUnknown
	}

	item := g.items[idx]
	if item.Bin != bin {
		g.score -= wrongPenalty
		if g.score < 0 {
			g.score = 0
		}
		g.timeLeft -= wrongTimeCost
		if g.timeLeft < 0 {
			g.timeLeft = 0
		}
		if g.timeLeft == 0 {
			g.state = StateGameOver
		}
		return SortOutcome{Correct: false, PointsDelta: -wrongPenalty}, nil
	}

	points := 10 + g.level*2
	g.score += points
	g.items = append(g.items[:idx], g.items[idx+1:]...)

	outcome := SortOutcome{Correct: true, PointsDelta: points}
	if len(g.items) == 0 {
		if g.level < maxLevel {
			prev := g.level
			g.level++
			g.spawn(startItems + prev)
			g.timeLeft += levelBonus
			outcome.LeveledUp = true
			outcome.BonusSeconds = levelBonus
		} else {
			g.spawn(endlessItems)
			g.timeLeft += endlessBonus
			outcome.BonusSeconds = endlessBonus
		}
	}
	return outcome, nil
}

// Tick advances the countdown by one second. Reaching zero ends the game.
func (g *Game) Tick() {
	if g.state != StatePlaying {
		return
	}
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.state = StateGameOver
	}
}

func (g *Game) State() State  { return g.state }
func (g *Game) Score() int    { return g.score }
func (g *Game) TimeLeft() int { return g.timeLeft }
func (g *Game) Level() int    { return g.level }
func (g *Game) Items() []Item { return g.items }

// TokensEarned converts the final score into ledger tokens, one per 10 points.
func (g *Game) TokensEarned() int {
	return g.score / 10
}

// QuizApp game core
//
// One quiz master drives a single shared game through phases; players join
// from their own devices and submit bets, answers and predictions; a public
// leaderboard display polls (or streams) rankings.
//
// Round types:
// - Betting rounds: players stake points before answering; correct answers
//   win the stake back plus the same amount, wrong answers forfeit it
// - Flat rounds: betting disabled, correct answers earn a fixed bonus
// - Auctions: sealed-bid, highest bidder pays their bid
// - Spotlight: one player answers alone for +10/-2 while everyone else
//   predicts the outcome for a +5 side payout
// - Poker: every player antes 10% of their points into a pot that is split
//   evenly between the correct answerers
//
// Implementation details:
// - One Game per process, guarded by a single mutex; every command runs
//   start-to-finish under the lock
// - Commands are only accepted in the phases listed in commandPhases
// - Points are allowed to go negative; bets and auctions never clamp
// - Registration order is retained for auction tie-breaks and leaderboard
//   tie ordering

package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Phase string

const (
	PhaseRegistration   Phase = "registration"
	PhaseBetting        Phase = "betting"
	PhaseAnswering      Phase = "answering"
	PhaseResults        Phase = "results"
	PhaseAuction        Phase = "auction"
	PhaseAuctionResults Phase = "auction-results"
	PhaseLeaderboard    Phase = "leaderboard"
	PhaseSpotlight      Phase = "spotlight"
	PhasePoker          Phase = "poker"
	PhasePokerAnswering Phase = "poker-answering"
)

const (
	PredictionCorrect = "correct"
	PredictionWrong   = "wrong"
)

const noAnswerPlaceholder = "(no answer submitted)"

// commandPhases lists the phases each quiz master command is legal in.
// Commands absent from the table are legal in every phase.
var commandPhases = map[string][]Phase{
	"start-quiz":           {PhaseRegistration},
	"next-round":           {PhaseResults, PhaseAuctionResults},
	"advance-to-answering": {PhaseBetting},
	"show-results":         {PhaseAnswering},
	"start-auction":        {PhaseResults, PhaseAuctionResults},
	"end-auction":          {PhaseAuction},
	"start-spotlight":      {PhaseResults},
	"grade-spotlight":      {PhaseSpotlight},
	"start-poker":          {PhaseResults},
	"poker-to-answering":   {PhasePoker},
	"show-poker-results":   {PhasePokerAnswering},
	"mark-answer":          {PhaseAnswering, PhasePokerAnswering},
	"undo-grading":         {PhaseAnswering, PhasePokerAnswering},
	"end-game":             {PhaseBetting, PhaseAnswering, PhaseResults, PhaseAuction, PhaseAuctionResults},
	"submit-bet":           {PhaseBetting, PhaseAuction},
	"submit-answer":        {PhaseAnswering, PhasePokerAnswering},
	"submit-prediction":    {PhaseSpotlight},
}

type Player struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// PlayerRoundEntry accumulates one player's submissions for the current
// round. The whole answers map is discarded when a new round, auction or
// poker round starts.
type PlayerRoundEntry struct {
	Bet           *int    `json:"bet,omitempty"`
	Answer        string  `json:"answer,omitempty"`
	TimeTaken     float64 `json:"timeTaken,omitempty"`
	FocusLosses   int     `json:"focusLosses,omitempty"`
	FocusLostTime float64 `json:"focusLostTime,omitempty"`
	Graded        bool    `json:"graded"`
	Correct       bool    `json:"correct"`
	PointsChange  int     `json:"pointsChange"`
	PokerWinnings int     `json:"pokerWinnings,omitempty"`
	PokerLoss     int     `json:"pokerLoss,omitempty"`
}

type AuctionWinner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bid  int    `json:"bid"`
}

// SpotlightResult is a snapshot of a graded spotlight round, kept for one
// display cycle after the spotlight fields themselves are cleared.
type SpotlightResult struct {
	PlayerID    string            `json:"playerId"`
	PlayerName  string            `json:"playerName"`
	Correct     bool              `json:"correct"`
	Predictions map[string]string `json:"predictions"`
}

type PokerWinner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Winnings int    `json:"winnings"`
}

// PokerResult summarizes a completed poker round. Share is the per-winner
// payout; any floor-division remainder of Pot stays undistributed.
type PokerResult struct {
	Pot     int           `json:"pot"`
	Share   int           `json:"share"`
	Winners []PokerWinner `json:"winners"`
}

// Game is the singleton shared state. All reads and mutations take mu, so
// each command is applied atomically with respect to polling clients.
type Game struct {
	mu    sync.Mutex
	clock clockwork.Clock

	startingPoints int
	flatBonus      int

	phase              Phase
	currentRound       int
	players            map[string]*Player
	order              []string
	answers            map[string]*PlayerRoundEntry
	bettingEnabled     bool
	answeringLocked    bool
	answeringStartedAt time.Time

	auctionWinner        *AuctionWinner
	spotlightPlayerID    string
	spotlightPredictions map[string]string
	spotlightResult      *SpotlightResult

	pokerPot    int
	pokerBets   map[string]int
	pokerResult *PokerResult
}

func NewGame(cfg *Config, clock clockwork.Clock) *Game {
	return &Game{
		clock:                clock,
		startingPoints:       cfg.startingPoints,
		flatBonus:            cfg.flatBonus,
		phase:                PhaseRegistration,
		players:              make(map[string]*Player),
		answers:              make(map[string]*PlayerRoundEntry),
		bettingEnabled:       true,
		spotlightPredictions: make(map[string]string),
		pokerBets:            make(map[string]int),
	}
}

// checkPhase rejects commands issued outside their legal phases. The
// original implementation applied most commands regardless of phase; here
// legality is an explicit table and violations fail with ErrInvalidCommand.
func (g *Game) checkPhase(command string) error {
	allowed, ok := commandPhases[command]
	if !ok {
		return nil
	}
	for _, phase := range allowed {
		if g.phase == phase {
			return nil
		}
	}
	return fmt.Errorf("%w: %q during %q", ErrInvalidCommand, command, g.phase)
}

func (g *Game) entry(playerID string) *PlayerRoundEntry {
	e, ok := g.answers[playerID]
	if !ok {
		e = &PlayerRoundEntry{}
		g.answers[playerID] = e
	}
	return e
}

// enterRound moves into betting or answering depending on the betting
// toggle, clearing per-round submissions.
func (g *Game) enterRound() {
	g.answers = make(map[string]*PlayerRoundEntry)
	g.answeringLocked = false
	if g.bettingEnabled {
		g.phase = PhaseBetting
	} else {
		g.phase = PhaseAnswering
		g.answeringStartedAt = g.clock.Now()
	}
}

// StartQuiz begins round one from the registration lobby.
func (g *Game) StartQuiz() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("start-quiz"); err != nil {
		return err
	}

	g.currentRound = 1
	g.enterRound()
	return nil
}

// NextRound advances to the following round, discarding everything left
// over from the previous round, auction, spotlight or poker pot.
func (g *Game) NextRound() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("next-round"); err != nil {
		return err
	}

	g.currentRound++
	g.spotlightResult = nil
	g.pokerResult = nil
	g.pokerBets = make(map[string]int)
	g.enterRound()
	return nil
}

func (g *Game) ToggleBetting(enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bettingEnabled = enabled
	return nil
}

func (g *Game) AdvanceToAnswering() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("advance-to-answering"); err != nil {
		return err
	}

	g.phase = PhaseAnswering
	g.answeringStartedAt = g.clock.Now()
	return nil
}

func (g *Game) LockAnswering(locked bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.answeringLocked = locked
	return nil
}

// MarkAnswer grades one player's answer. Grading is idempotent: a second
// mark on an already-graded entry is a no-op until UndoGrading clears it.
// During poker rounds the grade only records correctness; points move when
// the pot is distributed.
func (g *Game) MarkAnswer(playerID string, correct bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("mark-answer"); err != nil {
		return err
	}

	player, ok := g.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	entry := g.entry(playerID)
	if entry.Graded {
		return nil
	}

	change := 0
	if g.phase != PhasePokerAnswering {
		change = scoreAnswer(correct, g.bettingEnabled, entry.Bet, g.flatBonus)
	}

	player.Points += change
	entry.Graded = true
	entry.Correct = correct
	entry.PointsChange = change
	return nil
}

// UndoGrading reverses a previous MarkAnswer by subtracting the recorded
// point change. A no-op for ungraded entries.
func (g *Game) UndoGrading(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("undo-grading"); err != nil {
		return err
	}

	player, ok := g.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	entry, ok := g.answers[playerID]
	if !ok || !entry.Graded {
		return nil
	}

	player.Points -= entry.PointsChange
	entry.Graded = false
	entry.Correct = false
	entry.PointsChange = 0
	return nil
}

func (g *Game) AdjustScore(playerID string, change int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, ok := g.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	player.Points += change
	return nil
}

// ShowResults closes the answering window. Players who placed a bet but
// never submitted an answer are graded wrong and charged their bet before
// the results become visible.
func (g *Game) ShowResults() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("show-results"); err != nil {
		return err
	}

	for playerID, player := range g.players {
		entry, ok := g.answers[playerID]
		if !ok || entry.Bet == nil || entry.Answer != "" || entry.Graded {
			continue
		}
		bet := *entry.Bet
		player.Points -= bet
		entry.Graded = true
		entry.Correct = false
		entry.PointsChange = -bet
		entry.Answer = noAnswerPlaceholder
	}

	g.phase = PhaseResults
	return nil
}

func (g *Game) StartAuction() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("start-auction"); err != nil {
		return err
	}

	g.answers = make(map[string]*PlayerRoundEntry)
	g.auctionWinner = nil
	g.phase = PhaseAuction
	return nil
}

// EndAuction settles the sealed-bid auction. The highest bid wins; ties go
// to the bidder with fewer points at bid time, then to the earliest
// registered bidder. Only the winner pays.
func (g *Game) EndAuction() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("end-auction"); err != nil {
		return err
	}

	bids := make(map[string]int, len(g.answers))
	points := make(map[string]int, len(g.players))
	for playerID, entry := range g.answers {
		if entry.Bet != nil {
			bids[playerID] = *entry.Bet
		}
	}
	for playerID, player := range g.players {
		points[playerID] = player.Points
	}

	winnerID, bid := pickAuctionWinner(g.order, bids, points)
	if winnerID != "" {
		winner := g.players[winnerID]
		winner.Points -= bid
		g.auctionWinner = &AuctionWinner{
			ID:   winnerID,
			Name: winner.Name,
			Bid:  bid,
		}
	}

	g.phase = PhaseAuctionResults
	return nil
}

func (g *Game) StartSpotlight(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("start-spotlight"); err != nil {
		return err
	}

	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	g.spotlightPlayerID = playerID
	g.spotlightPredictions = make(map[string]string)
	g.spotlightResult = nil
	g.phase = PhaseSpotlight
	return nil
}

// GradeSpotlight scores the spotlight player, pays every matching
// predictor, and snapshots the outcome for one display cycle.
func (g *Game) GradeSpotlight(correct bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("grade-spotlight"); err != nil {
		return err
	}

	subjectID := g.spotlightPlayerID
	subjectName := ""
	if subject, ok := g.players[subjectID]; ok {
		subject.Points += spotlightDelta(correct)
		subjectName = subject.Name
	}

	outcome := PredictionWrong
	if correct {
		outcome = PredictionCorrect
	}
	for playerID, prediction := range g.spotlightPredictions {
		player, ok := g.players[playerID]
		if !ok || prediction != outcome {
			continue
		}
		player.Points += spotlightPredictionBonus
	}

	g.spotlightResult = &SpotlightResult{
		PlayerID:    subjectID,
		PlayerName:  subjectName,
		Correct:     correct,
		Predictions: g.spotlightPredictions,
	}
	g.spotlightPlayerID = ""
	g.spotlightPredictions = make(map[string]string)
	g.phase = PhaseResults
	return nil
}

// StartPoker collects the forced ante from every player into the pot and
// locks answering until the question is revealed.
func (g *Game) StartPoker() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("start-poker"); err != nil {
		return err
	}

	g.answers = make(map[string]*PlayerRoundEntry)
	g.pokerResult = nil
	g.pokerBets = make(map[string]int, len(g.players))
	g.pokerPot = 0

	for _, playerID := range g.order {
		player := g.players[playerID]
		ante := pokerAnte(player.Points)
		player.Points -= ante
		g.pokerBets[playerID] = ante
		g.pokerPot += ante
	}

	g.answeringLocked = true
	g.phase = PhasePoker
	return nil
}

func (g *Game) PokerToAnswering() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("poker-to-answering"); err != nil {
		return err
	}

	g.answeringLocked = false
	g.answeringStartedAt = g.clock.Now()
	g.phase = PhasePokerAnswering
	return nil
}

// ShowPokerResults grades everyone who never answered as wrong, then splits
// the pot evenly among the correct answerers. Floor division; the remainder
// is retained, never over-distributed.
func (g *Game) ShowPokerResults() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("show-poker-results"); err != nil {
		return err
	}

	for playerID := range g.players {
		entry := g.entry(playerID)
		if entry.Graded {
			continue
		}
		if entry.Answer == "" {
			entry.Answer = noAnswerPlaceholder
			entry.Graded = true
			entry.Correct = false
		}
	}

	var winnerIDs []string
	for _, playerID := range g.order {
		if entry, ok := g.answers[playerID]; ok && entry.Graded && entry.Correct {
			winnerIDs = append(winnerIDs, playerID)
		}
	}

	share := splitPot(g.pokerPot, len(winnerIDs))

	result := &PokerResult{
		Pot:     g.pokerPot,
		Share:   share,
		Winners: make([]PokerWinner, 0, len(winnerIDs)),
	}

	for _, playerID := range winnerIDs {
		player := g.players[playerID]
		player.Points += share
		g.entry(playerID).PokerWinnings = share
		result.Winners = append(result.Winners, PokerWinner{
			ID:       playerID,
			Name:     player.Name,
			Winnings: share,
		})
	}

	for _, playerID := range g.order {
		entry, ok := g.answers[playerID]
		if !ok || (entry.Graded && entry.Correct) {
			continue
		}
		entry.PokerLoss = g.pokerBets[playerID]
	}

	g.pokerResult = result
	g.pokerPot = 0
	g.phase = PhaseResults
	return nil
}

// RemovePlayer drops a player and every trace of them from the round state.
func (g *Game) RemovePlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	delete(g.players, playerID)
	delete(g.answers, playerID)
	delete(g.pokerBets, playerID)
	delete(g.spotlightPredictions, playerID)

	for i, id := range g.order {
		if id == playerID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	if g.auctionWinner != nil && g.auctionWinner.ID == playerID {
		g.auctionWinner = nil
	}
	if g.spotlightPlayerID == playerID {
		g.spotlightPlayerID = ""
	}
	return nil
}

func (g *Game) EndGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("end-game"); err != nil {
		return err
	}

	g.phase = PhaseLeaderboard
	return nil
}

// ResetGame wipes the whole game back to an empty registration lobby. The
// betting toggle survives a reset, matching the original behavior.
func (g *Game) ResetGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.players = make(map[string]*Player)
	g.order = nil
	g.answers = make(map[string]*PlayerRoundEntry)
	g.currentRound = 0
	g.phase = PhaseRegistration
	g.answeringLocked = false
	g.answeringStartedAt = time.Time{}
	g.auctionWinner = nil
	g.spotlightPlayerID = ""
	g.spotlightPredictions = make(map[string]string)
	g.spotlightResult = nil
	g.pokerPot = 0
	g.pokerBets = make(map[string]int)
	g.pokerResult = nil
	return nil
}

// Register creates a new player with the configured starting points.
// Registration always mints a fresh identity; it is never idempotent.
func (g *Game) Register(name string) (string, Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if name == "" {
		return "", Player{}, ErrInvalidName
	}

	playerID := uuid.NewString()
	player := &Player{
		Name:   name,
		Points: g.startingPoints,
	}
	g.players[playerID] = player
	g.order = append(g.order, playerID)
	return playerID, *player, nil
}

// SubmitBet records a bet during betting rounds or a sealed auction bid.
// The bet-slider rules enforced by the client are re-validated here: bets
// are non-negative, capped at the player's balance, and a stake of exactly
// 1 is disallowed during betting rounds (0 or 2+ only).
func (g *Game) SubmitBet(playerID string, bet int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("submit-bet"); err != nil {
		return err
	}

	player, ok := g.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if bet < 0 {
		return fmt.Errorf("%w: negative bet %d", ErrInvalidBet, bet)
	}
	if bet > player.Points {
		return fmt.Errorf("%w: bet %d exceeds balance %d", ErrInvalidBet, bet, player.Points)
	}
	if g.phase == PhaseBetting && bet == 1 {
		return fmt.Errorf("%w: bet must be 0 or at least 2", ErrInvalidBet)
	}

	value := bet
	g.entry(playerID).Bet = &value
	return nil
}

// SubmitAnswer stores a player's answer. TimeTaken is seconds as reported
// by the client; formatting is a presentation concern.
func (g *Game) SubmitAnswer(playerID string, answer string, timeTaken float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("submit-answer"); err != nil {
		return err
	}

	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if g.answeringLocked {
		return ErrAnsweringLocked
	}

	entry := g.entry(playerID)
	entry.Answer = answer
	if timeTaken > 0 {
		entry.TimeTaken = timeTaken
	}
	return nil
}

// LogFocusLoss records tab-switch telemetry reported by the player client.
func (g *Game) LogFocusLoss(playerID string, count int, lostTime float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	entry := g.entry(playerID)
	entry.FocusLosses = count
	entry.FocusLostTime = lostTime
	return nil
}

// SubmitPrediction records a side bet on the spotlight player's outcome.
func (g *Game) SubmitPrediction(playerID string, prediction string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPhase("submit-prediction"); err != nil {
		return err
	}

	if _, ok := g.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if prediction != PredictionCorrect && prediction != PredictionWrong {
		return fmt.Errorf("%w: %q", ErrInvalidPrediction, prediction)
	}
	if playerID == g.spotlightPlayerID {
		return fmt.Errorf("%w: spotlight player cannot predict their own outcome", ErrInvalidPrediction)
	}

	g.spotlightPredictions[playerID] = prediction
	return nil
}

// State is the full game snapshot returned to the quiz master.
type State struct {
	Players              map[string]Player           `json:"players"`
	CurrentRound         int                         `json:"currentRound"`
	Phase                Phase                       `json:"phase"`
	Answers              map[string]PlayerRoundEntry `json:"answers"`
	BettingEnabled       bool                        `json:"bettingEnabled"`
	AnsweringLocked      bool                        `json:"answeringLocked"`
	AnsweringStartTime   int64                       `json:"answeringStartTime,omitempty"`
	AuctionWinner        *AuctionWinner              `json:"auctionWinner"`
	SpotlightPlayerID    string                      `json:"spotlightPlayerId,omitempty"`
	SpotlightPredictions map[string]string           `json:"spotlightPredictions"`
	SpotlightResult      *SpotlightResult            `json:"spotlightResult"`
	PokerPot             int                         `json:"pokerPot"`
	PokerBets            map[string]int              `json:"pokerBets"`
	PokerResult          *PokerResult                `json:"pokerResult"`
}

// Snapshot deep-copies the game so callers can marshal it outside the lock.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := State{
		Players:              make(map[string]Player, len(g.players)),
		CurrentRound:         g.currentRound,
		Phase:                g.phase,
		Answers:              make(map[string]PlayerRoundEntry, len(g.answers)),
		BettingEnabled:       g.bettingEnabled,
		AnsweringLocked:      g.answeringLocked,
		AuctionWinner:        g.auctionWinner,
		SpotlightPlayerID:    g.spotlightPlayerID,
		SpotlightPredictions: make(map[string]string, len(g.spotlightPredictions)),
		SpotlightResult:      g.spotlightResult,
		PokerPot:             g.pokerPot,
		PokerBets:            make(map[string]int, len(g.pokerBets)),
		PokerResult:          g.pokerResult,
	}
	if !g.answeringStartedAt.IsZero() {
		state.AnsweringStartTime = g.answeringStartedAt.UnixMilli()
	}
	for playerID, player := range g.players {
		state.Players[playerID] = *player
	}
	for playerID, entry := range g.answers {
		state.Answers[playerID] = *entry
	}
	for playerID, prediction := range g.spotlightPredictions {
		state.SpotlightPredictions[playerID] = prediction
	}
	for playerID, ante := range g.pokerBets {
		state.PokerBets[playerID] = ante
	}
	return state
}

// PlayerResult is the graded outcome exposed to the owning player.
type PlayerResult struct {
	Correct      bool `json:"correct"`
	Bet          *int `json:"bet,omitempty"`
	PointsChange int  `json:"pointsChange"`
}

// PlayerView is the player-scoped projection of the shared state.
type PlayerView struct {
	Phase               Phase            `json:"phase"`
	CurrentRound        int              `json:"currentRound"`
	Player              Player           `json:"player"`
	BettingEnabled      bool             `json:"bettingEnabled"`
	AnsweringLocked     bool             `json:"answeringLocked"`
	HasSubmittedBet     bool             `json:"hasSubmittedBet"`
	HasSubmittedAnswer  bool             `json:"hasSubmittedAnswer"`
	IsGraded            bool             `json:"isGraded"`
	AuctionWinner       *AuctionWinner   `json:"auctionWinner"`
	Result              *PlayerResult    `json:"result"`
	IsSpotlight         bool             `json:"isSpotlight"`
	SpotlightPlayerName string           `json:"spotlightPlayerName,omitempty"`
	HasPredicted        bool             `json:"hasPredicted"`
	SpotlightResult     *SpotlightResult `json:"spotlightResult"`
	PokerPot            int              `json:"pokerPot"`
	PokerAnte           int              `json:"pokerAnte"`
	PokerResult         *PokerResult     `json:"pokerResult"`
}

// PlayerState returns one player's view of the game. An unknown playerID is
// the client's signal to discard its cached identity.
func (g *Game) PlayerState(playerID string) (PlayerView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, ok := g.players[playerID]
	if !ok {
		return PlayerView{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	view := PlayerView{
		Phase:           g.phase,
		CurrentRound:    g.currentRound,
		Player:          *player,
		BettingEnabled:  g.bettingEnabled,
		AnsweringLocked: g.answeringLocked,
		AuctionWinner:   g.auctionWinner,
		SpotlightResult: g.spotlightResult,
		PokerPot:        g.pokerPot,
		PokerAnte:       g.pokerBets[playerID],
		PokerResult:     g.pokerResult,
	}

	if entry, ok := g.answers[playerID]; ok {
		view.HasSubmittedBet = entry.Bet != nil
		view.HasSubmittedAnswer = entry.Answer != ""
		view.IsGraded = entry.Graded
		view.Result = &PlayerResult{
			Correct:      entry.Correct,
			Bet:          entry.Bet,
			PointsChange: entry.PointsChange,
		}
	}

	if g.spotlightPlayerID != "" {
		view.IsSpotlight = g.spotlightPlayerID == playerID
		if subject, ok := g.players[g.spotlightPlayerID]; ok {
			view.SpotlightPlayerName = subject.Name
		}
		_, view.HasPredicted = g.spotlightPredictions[playerID]
	}

	return view, nil
}

type LeaderboardEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type Leaderboard struct {
	Players      []LeaderboardEntry `json:"players"`
	CurrentRound int                `json:"currentRound"`
	Phase        Phase              `json:"phase"`
}

// Rankings returns players sorted by points, ties kept in registration
// order. Public, no auth.
func (g *Game) Rankings() Leaderboard {
	g.mu.Lock()
	defer g.mu.Unlock()

	entries := make([]LeaderboardEntry, 0, len(g.order))
	for _, playerID := range g.order {
		player := g.players[playerID]
		entries = append(entries, LeaderboardEntry{
			ID:     playerID,
			Name:   player.Name,
			Points: player.Points,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	return Leaderboard{
		Players:      entries,
		CurrentRound: g.currentRound,
		Phase:        g.phase,
	}
}

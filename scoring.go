package main

import (
	"math"
)

// Spotlight rounds use fixed deltas: the spotlighted player wins big or
// loses small, and everyone who called the outcome collects a side payout.
const (
	spotlightWinPoints       = 10
	spotlightLossPoints      = 2
	spotlightPredictionBonus = 5
)

// scoreAnswer computes the point delta for a graded answer.
//
// With betting disabled every correct answer earns the configured flat
// bonus. With betting enabled a correct answer nets the stake (the stake is
// never taken up front, so returning it plus equal winnings is a net gain
// of the bet), a zero-stake correct answer earns a participation point, and
// a wrong answer forfeits the stake. A nil bet counts as a stake of zero.
func scoreAnswer(correct bool, bettingEnabled bool, bet *int, flatBonus int) int {
	if !bettingEnabled {
		if correct {
			return flatBonus
		}
		return 0
	}

	stake := 0
	if bet != nil {
		stake = *bet
	}

	if !correct {
		return -stake
	}
	if stake == 0 {
		return 1
	}
	return stake
}

// pokerAnte is the forced contribution at the start of a poker round: 10%
// of the player's points rounded to the nearest integer, or an all-in of
// the full balance for players holding fewer than 10 points. Players with
// nothing left contribute nothing.
func pokerAnte(points int) int {
	if points <= 0 {
		return 0
	}
	if points < 10 {
		return points
	}
	return int(math.Round(float64(points) / 10))
}

// splitPot divides the pot evenly among winners using floor division. The
// remainder is retained rather than distributed, so payouts never exceed
// the pot.
func splitPot(pot, winners int) int {
	if winners == 0 {
		return 0
	}
	return pot / winners
}

// spotlightDelta is the spotlighted player's own outcome.
func spotlightDelta(correct bool) int {
	if correct {
		return spotlightWinPoints
	}
	return -spotlightLossPoints
}

// pickAuctionWinner selects the winning sealed bid. Highest bid wins; equal
// bids go to the bidder with fewer points at bid time (more at risk), and a
// full tie goes to the earliest-registered bidder. Returns an empty ID when
// no positive bid was placed.
func pickAuctionWinner(order []string, bids map[string]int, points map[string]int) (string, int) {
	winnerID := ""
	winningBid := 0

	for _, playerID := range order {
		bid, ok := bids[playerID]
		if !ok || bid <= 0 {
			continue
		}
		if winnerID == "" || bid > winningBid {
			winnerID = playerID
			winningBid = bid
			continue
		}
		if bid == winningBid && points[playerID] < points[winnerID] {
			winnerID = playerID
		}
	}

	return winnerID, winningBid
}

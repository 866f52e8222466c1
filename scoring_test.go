package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestScoreAnswerFlatMode(t *testing.T) {
	// With betting disabled the flat bonus applies regardless of any bet
	// left over in the entry.
	assert.Equal(t, 1, scoreAnswer(true, false, nil, 1))
	assert.Equal(t, 2, scoreAnswer(true, false, nil, 2))
	assert.Equal(t, 1, scoreAnswer(true, false, intPtr(3), 1))
	assert.Equal(t, 0, scoreAnswer(false, false, intPtr(3), 1))
	assert.Equal(t, 0, scoreAnswer(false, false, nil, 2))
}

func TestScoreAnswerBetMode(t *testing.T) {
	// Correct with no stake earns the participation point.
	assert.Equal(t, 1, scoreAnswer(true, true, nil, 1))
	assert.Equal(t, 1, scoreAnswer(true, true, intPtr(0), 1))

	// Correct with a stake nets the stake.
	assert.Equal(t, 3, scoreAnswer(true, true, intPtr(3), 1))
	assert.Equal(t, 7, scoreAnswer(true, true, intPtr(7), 1))

	// Wrong forfeits the stake.
	assert.Equal(t, -3, scoreAnswer(false, true, intPtr(3), 1))
	assert.Equal(t, 0, scoreAnswer(false, true, intPtr(0), 1))
	assert.Equal(t, 0, scoreAnswer(false, true, nil, 1))
}

func TestPokerAnte(t *testing.T) {
	tests := []struct {
		points int
		ante   int
	}{
		{points: 100, ante: 10},
		{points: 25, ante: 3}, // 2.5 rounds up
		{points: 24, ante: 2}, // 2.4 rounds down
		{points: 10, ante: 1},
		{points: 14, ante: 1},
		{points: 15, ante: 2},
		{points: 9, ante: 9}, // below 10 is all-in
		{points: 1, ante: 1},
		{points: 0, ante: 0},
		{points: -4, ante: 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.ante, pokerAnte(tc.points), "points=%d", tc.points)
	}
}

func TestSplitPot(t *testing.T) {
	assert.Equal(t, 8, splitPot(16, 2))
	assert.Equal(t, 5, splitPot(16, 3)) // remainder 1 retained
	assert.Equal(t, 16, splitPot(16, 1))
	assert.Equal(t, 0, splitPot(16, 0))
	assert.Equal(t, 0, splitPot(0, 2))
}

func TestSpotlightDelta(t *testing.T) {
	assert.Equal(t, 10, spotlightDelta(true))
	assert.Equal(t, -2, spotlightDelta(false))
}

func TestPickAuctionWinnerHighestBid(t *testing.T) {
	order := []string{"a", "b", "c"}
	bids := map[string]int{"a": 2, "b": 5, "c": 3}
	points := map[string]int{"a": 10, "b": 10, "c": 10}

	winner, bid := pickAuctionWinner(order, bids, points)
	assert.Equal(t, "b", winner)
	assert.Equal(t, 5, bid)
}

func TestPickAuctionWinnerTieFewerPointsWins(t *testing.T) {
	order := []string{"a", "b"}
	bids := map[string]int{"a": 5, "b": 5}
	points := map[string]int{"a": 20, "b": 8}

	winner, bid := pickAuctionWinner(order, bids, points)
	assert.Equal(t, "b", winner)
	assert.Equal(t, 5, bid)
}

func TestPickAuctionWinnerFullTieEarliestRegistered(t *testing.T) {
	order := []string{"a", "b", "c"}
	bids := map[string]int{"a": 5, "b": 5, "c": 5}
	points := map[string]int{"a": 10, "b": 10, "c": 10}

	winner, _ := pickAuctionWinner(order, bids, points)
	assert.Equal(t, "a", winner)
}

func TestPickAuctionWinnerNoPositiveBids(t *testing.T) {
	order := []string{"a", "b"}
	bids := map[string]int{"a": 0}
	points := map[string]int{"a": 10, "b": 10}

	winner, bid := pickAuctionWinner(order, bids, points)
	assert.Equal(t, "", winner)
	assert.Equal(t, 0, bid)
}

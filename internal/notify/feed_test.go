package notify

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnhappyParkSkewsNegative(t *testing.T) {
	feed := NewFeed(rand.New(rand.NewSource(1)))

	counts := map[Tone]int{}
	for i := 0; i < 1000; i++ {
		msg := feed.Sample(0.2, 10, "Carousel")
		counts[msg.Tone]++
	}

	assert.Zero(t, counts[TonePositive])
	assert.Greater(t, counts[ToneNegative], counts[ToneNeutral])
}

func TestGougingPricesComplainEvenWhenHappy(t *testing.T) {
	feed := NewFeed(rand.New(rand.NewSource(2)))

	counts := map[Tone]int{}
	for i := 0; i < 1000; i++ {
		msg := feed.Sample(0.95, 100, "Carousel")
		counts[msg.Tone]++
	}

	assert.Zero(t, counts[TonePositive])
	assert.Greater(t, counts[ToneNegative], 0)
}

func TestHappyParkSkewsPositive(t *testing.T) {
	feed := NewFeed(rand.New(rand.NewSource(3)))

	counts := map[Tone]int{}
	for i := 0; i < 1000; i++ {
		msg := feed.Sample(0.9, 10, "Carousel")
		counts[msg.Tone]++
	}

	assert.Zero(t, counts[ToneNegative])
	assert.Greater(t, counts[TonePositive], counts[ToneNeutral])
}

func TestMiddlingParkMixesAllTones(t *testing.T) {
	feed := NewFeed(rand.New(rand.NewSource(4)))

	counts := map[Tone]int{}
	for i := 0; i < 1000; i++ {
		msg := feed.Sample(0.55, 10, "Carousel")
		counts[msg.Tone]++
	}

	assert.Greater(t, counts[TonePositive], 0)
	assert.Greater(t, counts[ToneNeutral], 0)
	assert.Greater(t, counts[ToneNegative], 0)
}

func TestPlaceholdersAreFilled(t *testing.T) {
	feed := NewFeed(rand.New(rand.NewSource(5)))

	for i := 0; i < 200; i++ {
		msg := feed.Sample(0.9, 10, "Roller Coaster")
		assert.NotContains(t, msg.Text, "{ride}")
	}

	for i := 0; i < 50; i++ {
		msg := feed.NewBuilding("Ferris Wheel")
		assert.NotContains(t, msg.Text, "{building}")
		assert.True(t, strings.Contains(msg.Text, "Ferris Wheel"))
		assert.Equal(t, TonePositive, msg.Tone)
	}
}

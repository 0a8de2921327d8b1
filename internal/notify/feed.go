// Package notify generates the guest chatter feed: short flavor
// messages whose tone follows the park's satisfaction and pricing.
package notify

import (
	"fmt"
	"math/rand"
	"strings"
)

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

type Message struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
	Tone  Tone   `json:"tone"`
}

type template struct {
	emoji string
	text  string
}

var guestNames = []string{
	"Alex", "Jordan", "Sam", "Taylor", "Morgan", "Casey", "Riley", "Quinn",
	"Avery", "Jamie", "Drew", "Skyler", "Reese", "Charlie", "Frankie", "Jessie",
}

var positiveMessages = []template{
	{"🎢", "just rode the {ride} - AMAZING!"},
	{"😍", "this park is incredible!"},
	{"🎉", "best day ever at this park!"},
	{"🍦", "the ice cream here is so good!"},
	{"🌟", "definitely coming back again!"},
	{"📸", "taking so many photos!"},
	{"🎠", "my kids love this place!"},
	{"👍", "great value for the ticket price!"},
	{"🤩", "the rides are amazing!"},
	{"💕", "perfect day out with friends!"},
}

var negativeMessages = []template{
	{"😤", "these ticket prices are insane!"},
	{"😡", "waited forever in line..."},
	{"🚫", "not enough restrooms!"},
	{"💸", "way too expensive here"},
	{"😞", "leaving early, not worth it"},
	{"🥵", "need more shade and benches!"},
	{"😒", "the queues are ridiculous"},
	{"🙄", "overpriced and overcrowded"},
}

var neutralMessages = []template{
	{"🚶", "just arrived at the park!"},
	{"🎟️", "got my ticket, let's go!"},
	{"🗺️", "checking out the map..."},
	{"☕", "grabbing a coffee first"},
	{"👀", "so many rides to choose from!"},
	{"🤔", "where should we go first?"},
}

var newBuildingMessages = []template{
	{"🆕", "ooh they built a new {building}!"},
	{"🎊", "new {building} just opened!"},
	{"👀", "can't wait to try the new {building}!"},
	{"🎉", "finally, a new {building}!"},
}

// Feed picks flavor messages from tone pools weighted by park mood.
// The rand source is injectable so tests are deterministic.
type Feed struct {
	rng *rand.Rand
}

func NewFeed(rng *rand.Rand) *Feed {
	return &Feed{rng: rng}
}

// Sample returns one guest message. Tone selection mirrors the guest
// mood: unhappy or gouged guests mostly complain, happy ones mostly
// gush, everyone else is a mixed bag. Price ratio is normalized
// around a $50 ticket. rideName fills the {ride} placeholder.
func (f *Feed) Sample(satisfaction, ticketPrice float64, rideName string) Message {
	priceRatio := ticketPrice / 50

	var pool []template
	var tone Tone
	roll := f.rng.Float64()

	switch {
	case satisfaction < 0.4 || priceRatio > 2:
		if roll < 0.7 {
			pool, tone = negativeMessages, ToneNegative
		} else {
			pool, tone = neutralMessages, ToneNeutral
		}
	case satisfaction > 0.7 && priceRatio < 1.5:
		if roll < 0.7 {
			pool, tone = positiveMessages, TonePositive
		} else {
			pool, tone = neutralMessages, ToneNeutral
		}
	default:
		switch {
		case roll < 0.4:
			pool, tone = positiveMessages, TonePositive
		case roll < 0.7:
			pool, tone = neutralMessages, ToneNeutral
		default:
			pool, tone = negativeMessages, ToneNegative
		}
	}

	tpl := pool[f.rng.Intn(len(pool))]
	if rideName == "" {
		rideName = "rides"
	}
	text := strings.ReplaceAll(tpl.text, "{ride}", rideName)
	return Message{
		Emoji: tpl.emoji,
		Text:  fmt.Sprintf("%s: %q", f.name(), text),
		Tone:  tone,
	}
}

// NewBuilding announces a fresh construction to the feed.
func (f *Feed) NewBuilding(buildingName string) Message {
	tpl := newBuildingMessages[f.rng.Intn(len(newBuildingMessages))]
	text := strings.ReplaceAll(tpl.text, "{building}", buildingName)
	return Message{
		Emoji: tpl.emoji,
		Text:  fmt.Sprintf("%s: %q", f.name(), text),
		Tone:  TonePositive,
	}
}

func (f *Feed) name() string {
	return guestNames[f.rng.Intn(len(guestNames))]
}

package catalog

// RequirementKind tags a milestone requirement variant.
type RequirementKind string

const (
	// ReqPeakGuests: peak concurrent guests ever observed >= Amount.
	ReqPeakGuests RequirementKind = "peak_guests"
)

// Requirement is a tagged variant; evaluation is dispatched by Kind in
// the milestone tracker's predicate registry.
type Requirement struct {
	Kind   RequirementKind `json:"kind"`
	Amount float64         `json:"amount"`
}

// RewardKind tags a milestone reward variant.
type RewardKind string

const (
	RewardMoney RewardKind = "money"
)

// Reward is granted exactly once when a milestone completes.
type Reward struct {
	Kind   RewardKind `json:"kind"`
	Amount float64    `json:"amount"`
}

// Milestone is a one-shot achievement keyed to a lifetime statistic.
type Milestone struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
	Requirement Requirement `json:"requirement"`
	Reward      Reward      `json:"reward"`
}

var Milestones = []Milestone{
	{
		ID: "peak_guests_100", Name: "Crowd Favorite", Icon: "👥",
		Description: "Have 100 guests in your park at once",
		Requirement: Requirement{Kind: ReqPeakGuests, Amount: 100},
		Reward:      Reward{Kind: RewardMoney, Amount: 5000},
	},
	{
		ID: "peak_guests_250", Name: "Popular Destination", Icon: "🎢",
		Description: "Have 250 guests in your park at once",
		Requirement: Requirement{Kind: ReqPeakGuests, Amount: 250},
		Reward:      Reward{Kind: RewardMoney, Amount: 15000},
	},
	{
		ID: "peak_guests_500", Name: "Theme Park Tycoon", Icon: "👑",
		Description: "Have 500 guests in your park at once",
		Requirement: Requirement{Kind: ReqPeakGuests, Amount: 500},
		Reward:      Reward{Kind: RewardMoney, Amount: 50000},
	},
}

package catalog

// Category identifies what a building contributes to the park.
type Category string

const (
	CategoryRide           Category = "ride"
	CategoryShop           Category = "shop"
	CategoryInfrastructure Category = "infrastructure"
)

// Tier gates availability behind park-rank perks.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// CategoryStats is the per-category stat block. The aggregator
// type-switches on the concrete type rather than probing optional
// fields.
type CategoryStats interface {
	Category() Category
}

// RideStats: prestige feeds reputation, capacity serves the
// entertainment need.
type RideStats struct {
	Prestige     float64 `json:"prestige"`
	RideCapacity float64 `json:"ride_capacity"`
}

func (RideStats) Category() Category { return CategoryRide }

// ShopStats: spending rate is currency per guest per second; hunger
// capacity serves the hunger need (zero for non-food shops).
type ShopStats struct {
	SpendingRate   float64 `json:"spending_rate"`
	HungerCapacity float64 `json:"hunger_capacity"`
}

func (ShopStats) Category() Category { return CategoryShop }

// InfrastructureStats serve the comfort and safety needs.
type InfrastructureStats struct {
	ComfortCapacity float64 `json:"comfort_capacity"`
	SafetyCapacity  float64 `json:"safety_capacity"`
}

func (InfrastructureStats) Category() Category { return CategoryInfrastructure }

// BuildingDefinition is one immutable catalog entry. Stats holds the
// category-specific block; MaintenanceCost is currency per second at
// level 1. RequiresPerk, when set, gates the building until that perk
// is owned.
type BuildingDefinition struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Icon            string        `json:"icon"`
	Tier            Tier          `json:"tier"`
	BaseCost        float64       `json:"base_cost"`
	MaintenanceCost float64       `json:"maintenance_cost"`
	RequiresPerk    string        `json:"requires_perk,omitempty"`
	Stats           CategoryStats `json:"-"`
	Description     string        `json:"description"`
}

func (b BuildingDefinition) Category() Category {
	if b.Stats == nil {
		return ""
	}
	return b.Stats.Category()
}

// Buildings is the stock catalog.
var Buildings = []BuildingDefinition{
	{
		ID: "carousel", Name: "Carousel", Icon: "🎠", Tier: TierBasic,
		BaseCost: 3000, MaintenanceCost: 0.5,
		Stats:       RideStats{Prestige: 20, RideCapacity: 15},
		Description: "A classic merry-go-round",
	},
	{
		ID: "bumper_cars", Name: "Bumper Cars", Icon: "🚗", Tier: TierBasic,
		BaseCost: 8000, MaintenanceCost: 1.2,
		Stats:       RideStats{Prestige: 35, RideCapacity: 20},
		Description: "Crash into your friends!",
	},
	{
		ID: "ferris_wheel", Name: "Ferris Wheel", Icon: "🎡", Tier: TierStandard,
		BaseCost: 25000, MaintenanceCost: 3,
		RequiresPerk: "park_rank_2",
		Stats:        RideStats{Prestige: 80, RideCapacity: 40},
		Description:  "See the whole park from above",
	},
	{
		ID: "log_flume", Name: "Log Flume", Icon: "🌊", Tier: TierStandard,
		BaseCost: 45000, MaintenanceCost: 5,
		RequiresPerk: "park_rank_2",
		Stats:        RideStats{Prestige: 120, RideCapacity: 30},
		Description:  "Get soaked on this water ride",
	},
	{
		ID: "roller_coaster", Name: "Roller Coaster", Icon: "🎢", Tier: TierPremium,
		BaseCost: 150000, MaintenanceCost: 12,
		RequiresPerk: "park_rank_3",
		Stats:        RideStats{Prestige: 300, RideCapacity: 60},
		Description:  "The ultimate thrill ride",
	},
	{
		ID: "drop_tower", Name: "Drop Tower", Icon: "🗼", Tier: TierPremium,
		BaseCost: 200000, MaintenanceCost: 15,
		RequiresPerk: "park_rank_3",
		Stats:        RideStats{Prestige: 380, RideCapacity: 45},
		Description:  "Free fall from the sky",
	},

	{
		ID: "snack_cart", Name: "Snack Cart", Icon: "🌭", Tier: TierBasic,
		BaseCost: 2000, MaintenanceCost: 0.3,
		Stats:       ShopStats{SpendingRate: 0.05, HungerCapacity: 25},
		Description: "Hot dogs and pretzels on wheels",
	},
	{
		ID: "gift_shop", Name: "Gift Shop", Icon: "🎁", Tier: TierBasic,
		BaseCost: 12000, MaintenanceCost: 1.5,
		Stats:       ShopStats{SpendingRate: 0.15},
		Description: "Souvenirs nobody needs but everyone buys",
	},
	{
		ID: "ice_cream_parlor", Name: "Ice Cream Parlor", Icon: "🍦", Tier: TierStandard,
		BaseCost: 30000, MaintenanceCost: 3.5,
		RequiresPerk: "park_rank_2",
		Stats:        ShopStats{SpendingRate: 0.2, HungerCapacity: 60},
		Description:  "Twelve flavors, endless queues",
	},
	{
		ID: "food_court", Name: "Food Court", Icon: "🍔", Tier: TierStandard,
		BaseCost: 55000, MaintenanceCost: 6,
		RequiresPerk: "park_rank_2",
		Stats:        ShopStats{SpendingRate: 0.3, HungerCapacity: 150},
		Description:  "Feeds a small army of hungry guests",
	},

	{
		ID: "restroom", Name: "Restroom", Icon: "🚻", Tier: TierBasic,
		BaseCost: 1500, MaintenanceCost: 0.4,
		Stats:       InfrastructureStats{ComfortCapacity: 50},
		Description: "Always in demand",
	},
	{
		ID: "first_aid", Name: "First Aid Station", Icon: "⛑️", Tier: TierBasic,
		BaseCost: 5000, MaintenanceCost: 0.8,
		Stats:       InfrastructureStats{SafetyCapacity: 60},
		Description: "Band-aids and reassurance",
	},
	{
		ID: "shaded_plaza", Name: "Shaded Plaza", Icon: "⛲", Tier: TierStandard,
		BaseCost: 20000, MaintenanceCost: 2,
		RequiresPerk: "park_rank_2",
		Stats:        InfrastructureStats{ComfortCapacity: 120, SafetyCapacity: 20},
		Description:  "Benches, fountains, and sweet relief",
	},
	{
		ID: "security_office", Name: "Security Office", Icon: "🛡️", Tier: TierStandard,
		BaseCost: 26000, MaintenanceCost: 3,
		RequiresPerk: "park_rank_2",
		Stats:        InfrastructureStats{SafetyCapacity: 160},
		Description:  "Keeps the queues orderly",
	},
}

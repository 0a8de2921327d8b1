package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables.
// Falls back to defaults if variables are not set.
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvFloat("STARTING_MONEY"); val > 0 {
		cfg.StartingMoney = val
	}
	if val := getEnvInt("STARTING_SLOTS"); val > 0 {
		cfg.StartingSlots = val
	}
	if val := getEnvInt("MAX_SLOTS"); val > 0 {
		cfg.MaxSlots = val
	}
	if val := getEnvInt("MAX_LEVEL"); val > 0 {
		cfg.MaxLevel = val
	}
	if val := getEnvFloat("GUESTS_PER_SLOT"); val > 0 {
		cfg.GuestsPerSlot = val
	}
	if val := getEnvFloat("TICKET_PRICE_MAX"); val > 0 {
		cfg.TicketPriceMax = val
	}
	if val := getEnvFloat("ARRIVAL_RATE"); val > 0 {
		cfg.ArrivalRate = val
	}
	if val := getEnvFloat("DEPARTURE_RATE"); val > 0 {
		cfg.DepartureRate = val
	}
	if val := getEnvFloat("UNHAPPY_LEAVE_RATE"); val > 0 {
		cfg.UnhappyLeaveRate = val
	}

	// Support preset modes
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the server reads from the environment.
type Config struct {
	DatabaseURL string
	Port        string

	JWTSecret string
	JWTTTL    time.Duration

	// Minimum lead time before a reservation's start during which a
	// non-administrator may still edit or cancel it.
	ModificationWindow time.Duration

	CORSOrigins []string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	InspectionCronSpec      string
	InspectionLookaheadDays int
}

func Load() (*Config, error) {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	cfg := &Config{
		DatabaseURL:             dbURL,
		Port:                    envOr("PORT", "8080"),
		JWTSecret:               secret,
		JWTTTL:                  time.Duration(envInt("JWT_TTL_HOURS", 8)) * time.Hour,
		ModificationWindow:      time.Duration(envInt("RESERVATION_MODIFICATION_HOURS", 2)) * time.Hour,
		CORSOrigins:             strings.Split(envOr("CORS_ORIGINS", "*"), ","),
		SendGridAPIKey:          os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:       os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:        envOr("SENDGRID_FROM_NAME", "FleetReserve"),
		TwilioAccountSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:         os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:        os.Getenv("TWILIO_FROM_NUMBER"),
		InspectionCronSpec:      envOr("INSPECTION_REMINDER_CRON", "0 7 * * *"),
		InspectionLookaheadDays: envInt("INSPECTION_LOOKAHEAD_DAYS", 14),
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

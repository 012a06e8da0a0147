package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	SessionSecret string
	SessionIssuer string
	SessionTTL    time.Duration

	StripeAPIKey       string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	CheckoutCurrency   string
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "coursebay"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	// No brokers configured means the in-process bus; KAFKA_BROKERS opts a
	// deployment into the external broker.
	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}

	issuer := os.Getenv("SESSION_ISSUER")
	if issuer == "" {
		issuer = service
	}

	successURL := os.Getenv("CHECKOUT_SUCCESS_URL")
	if successURL == "" {
		successURL = "http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := os.Getenv("CHECKOUT_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "http://localhost:3000/checkout/cancel"
	}
	currency := strings.ToLower(strings.TrimSpace(os.Getenv("CHECKOUT_CURRENCY")))
	if currency == "" {
		currency = "usd"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionIssuer: issuer,
		SessionTTL:    envDuration("SESSION_TTL_HOURS", 24*time.Hour),

		StripeAPIKey:       os.Getenv("STRIPE_API_KEY"),
		CheckoutSuccessURL: successURL,
		CheckoutCancelURL:  cancelURL,
		CheckoutCurrency:   currency,
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}

package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Mail groups the SMTP connection parameters used by the notification
// consumer.  When Host is empty the application falls back to a console
// mailer that only logs outgoing messages.
type Mail struct {
	Host string // SMTP host
	Port string // SMTP port
	User string // SMTP auth user
	Pass string // SMTP auth password
	From string // sender address on outgoing mail
}

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The struct is built once at startup and
// passed explicitly to every component that needs it.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	JWTSecret  string // secret used to sign JWTs
	JWTTTLMin  int    // token time-to-live in minutes; 0 means tokens never expire
	BcryptCost int    // bcrypt cost for password hashing
	AMQPURL    string // RabbitMQ connection URL (optional, mail queue disabled when empty)
	Mail       Mail   // SMTP parameters
}

// Load reads configuration from the environment, honouring a local .env
// file when present.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	// A missing .env file is fine; deployments export real env vars.
	_ = godotenv.Load()

	return Config{
		Env:        must("APP_ENV"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		JWTTTLMin:  optInt("JWT_TTL_MIN", 0),
		BcryptCost: optInt("BCRYPT_COST", 10),
		AMQPURL:    getenv("RABBITMQ_URL", getenv("AMQP_URL", "")),
		Mail: Mail{
			Host: os.Getenv("MAIL_HOST"),
			Port: getenv("MAIL_PORT", "587"),
			User: os.Getenv("MAIL_AUTH_USER"),
			Pass: os.Getenv("MAIL_AUTH_PASS"),
			From: getenv("MAIL_FROM", "no-reply@train-booking.local"),
		},
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// optInt reads an optional integer variable, returning def when the
// variable is unset.  An unparseable value is fatal.
func optInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

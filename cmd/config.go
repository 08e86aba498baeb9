package cmd

import "time"

// Config carries everything the service needs from the environment.
type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	RabbitMQURL string
	PaymentTTL  time.Duration
}

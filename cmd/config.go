package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	TokenTTL  time.Duration

	AdminUsername     string
	AdminPasswordHash string

	OrderExpiryWindow      time.Duration
	WithdrawalExpiryWindow time.Duration
}

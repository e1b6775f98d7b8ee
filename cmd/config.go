package cmd

// Config carries every externally provided setting of the service. Values
// come from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	AmqpURL string

	CatalogBaseURL  string
	DispatchBaseURL string
	MailerBaseURL   string
}

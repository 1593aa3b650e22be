package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Admin   Admin   `envPrefix:"ADMIN_"`
	Uploads Uploads `envPrefix:"UPLOADS_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	SuccessURL    string `env:"SUCCESS_URL"`
	CancelURL     string `env:"CANCEL_URL"`
}

type Admin struct {
	Token     string `env:"TOKEN"`
	Password  string `env:"PASSWORD"`
	JWTSecret string `env:"JWT_SECRET"`
}

type Uploads struct {
	Dir     string `env:"DIR" envDefault:"./uploads"`
	BaseURL string `env:"BASE_URL" envDefault:"/uploads"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == "development"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

package config

import (
	"time"
)

type DB struct {
	// Url is a postgres URL or a sqlite file path.
	Url string `envconfig:"URL" default:"pelicoin.db"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// Admin is the seed credential pair for the administrator account.
type Admin struct {
	Email    string `envconfig:"EMAIL" default:"admin@loomis.org"`
	Password string `envconfig:"PASSWORD"`
}

// SignUp controls sign-up validation.
type SignUp struct {
	EmailDomain string `envconfig:"EMAIL_DOMAIN" default:"loomis.org"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[pelicoin]"`
}

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Admin     *Admin     `envconfig:"ADMIN"`
	SignUp    *SignUp    `envconfig:"SIGNUP"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

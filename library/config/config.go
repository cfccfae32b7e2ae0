package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/circuit_breaker"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/kafka"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/logger"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

// Admin is the account seeded on startup. Seeding is skipped without an email.
type Admin struct {
	Email    string `envconfig:"ADMIN_EMAIL"`
	UserName string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password string `json:"-" envconfig:"ADMIN_PASSWORD"`
}

type Config struct {
	Server         HTTPServer `yaml:"server"`
	Database       postgres.DB
	Kafka          kafka.Config
	CircuitBreaker circuit_breaker.Config
	Auth           auth.Config
	Admin          Admin
	Log            logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment. Options set defaults that the
// environment may override.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

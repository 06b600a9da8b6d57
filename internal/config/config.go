package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "ARBOLEDA_"

// legacyCredentialsEnv is the variable the first deployment used for the
// service-account key.
const legacyCredentialsEnv = "GOOGLE_SERVICE_ACCOUNT_JSON"

type Application struct {
	Listen   string   `koanf:"listen"`
	Locale   string   `koanf:"locale"`
	Timezone string   `koanf:"timezone"`
	Sheets   Sheets   `koanf:"sheets"`
	Board    Board    `koanf:"board"`
	Admin    Admin    `koanf:"admin"`
	Database Database `koanf:"db"`
}

type Sheets struct {
	SpreadsheetId   string        `koanf:"spreadsheetid"`
	CredentialsJson string        `koanf:"credentialsjson"`
	Ranges          Ranges        `koanf:"ranges"`
	CacheTTL        time.Duration `koanf:"cachettl"`
	Refresh         string        `koanf:"refresh"`
}

// Ranges are A1 ranges of the four source tabs.
type Ranges struct {
	Retreats   string `koanf:"retreats"`
	Activities string `koanf:"activities"`
	Circles    string `koanf:"circles"`
	Birthdays  string `koanf:"birthdays"`
}

type Board struct {
	BirthdayWindowDays int    `koanf:"birthdaywindowdays"`
	OtherDatesLink     string `koanf:"otherdateslink"`
}

type Admin struct {
	PasswordHash string `koanf:"passwordhash"`
}

type Database struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	User    string `koanf:"user"`
	Pass    string `koanf:"pass"`
	Name    string `koanf:"name"`
	Schema  string `koanf:"schema"`
}

// Configured reports whether the spreadsheet can be queried at all.
func (s Sheets) Configured() bool {
	return s.SpreadsheetId != "" && s.CredentialsJson != ""
}

func Defaults() Application {
	return Application{
		Listen:   ":8181",
		Locale:   "es",
		Timezone: "America/Argentina/Buenos_Aires",
		Sheets: Sheets{
			Ranges: Ranges{
				Retreats:   "rt!A:Z",
				Activities: "crt-cv!A:Z",
				Circles:    "ces!A:Z",
				Birthdays:  "'cumpleaños'!A:Z",
			},
			CacheTTL: 5 * time.Minute,
		},
		Board: Board{
			BirthdayWindowDays: 30,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "arboleda",
			Name:   "arboleda",
			Schema: "arboleda",
		},
	}
}

// Load layers defaults, the YAML file at path and ARBOLEDA_* environment
// variables, in that order. A .env file in the working directory is read
// into the environment first when present.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}

	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if app.Sheets.CredentialsJson == "" {
		app.Sheets.CredentialsJson = os.Getenv(legacyCredentialsEnv)
	}

	return app, nil
}

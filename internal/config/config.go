package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Platform struct {
		APIURL string `yaml:"apiUrl"`
		Token  string `yaml:"token"`
	} `yaml:"platform"`

	Defaults struct {
		BrandID    string `yaml:"brandId"`
		PointID    string `yaml:"pointId"`
		OrderType  string `yaml:"orderType"`
		CityID     string `yaml:"cityId"`
		AccountID  string `yaml:"accountId"`
		EmployeeID string `yaml:"employeeId"`
	} `yaml:"defaults"`

	Client struct {
		RateLimitRPS   float64 `yaml:"rateLimitRps"`
		RateLimitBurst int     `yaml:"rateLimitBurst"`
	} `yaml:"client"`

	Cache struct {
		MaxEntities int `yaml:"maxEntities"`
	} `yaml:"cache"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Load() (Config, error) {
	cfg := Config{}
	cfg.Client.RateLimitBurst = 1
	cfg.Log.Level = "info"

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	// Environment overrides (expected in deploy).
	if v := os.Getenv("MENUHUB_API_URL"); v != "" {
		cfg.Platform.APIURL = v
	}
	if v := os.Getenv("MENUHUB_TOKEN"); v != "" {
		cfg.Platform.Token = v
	}
	if v := os.Getenv("MENUHUB_BRAND_ID"); v != "" {
		cfg.Defaults.BrandID = v
	}
	if v := os.Getenv("MENUHUB_POINT_ID"); v != "" {
		cfg.Defaults.PointID = v
	}
	if v := os.Getenv("MENUHUB_ORDER_TYPE"); v != "" {
		cfg.Defaults.OrderType = v
	}
	if v := os.Getenv("MENUHUB_CITY_ID"); v != "" {
		cfg.Defaults.CityID = v
	}
	if v := os.Getenv("MENUHUB_ACCOUNT_ID"); v != "" {
		cfg.Defaults.AccountID = v
	}
	if v := os.Getenv("MENUHUB_EMPLOYEE_ID"); v != "" {
		cfg.Defaults.EmployeeID = v
	}
	if v := os.Getenv("MENUHUB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.Platform.APIURL == "" {
		return Config{}, errors.New("missing platform API url (set platform.apiUrl in config or MENUHUB_API_URL)")
	}
	if cfg.Platform.Token == "" {
		return Config{}, errors.New("missing platform token (set platform.token in config or MENUHUB_TOKEN)")
	}

	return cfg, nil
}

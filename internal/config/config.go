// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
    "fmt"
    "os"
    "strconv"

    yaml "gopkg.in/yaml.v3"
)

type Config struct {
    ListenAddr string     `yaml:"listenAddr"`
    Data       DataConfig `yaml:"data"`
    RedisURL   string     `yaml:"redisUrl"`

    RateRPS   float64 `yaml:"rateRps"`
    RateBurst int     `yaml:"rateBurst"`

    AuthMode       string `yaml:"authMode"`
    AuthHMACSecret string `yaml:"authHmacSecret"`

    WebhookMaxAttempts int `yaml:"webhookMaxAttempts"`
}

type DataConfig struct {
    ResultsPath       string `yaml:"resultsPath"`
    BestKnownPath     string `yaml:"bestKnownPath"`
    ValidationPath    string `yaml:"validationPath"`
    SolutionsDir      string `yaml:"solutionsDir"`
    VisualizationsDir string `yaml:"visualizationsDir"`
}

// Default file names match the solver pipeline's output layout.
func defaults() *Config {
    return &Config{
        ListenAddr: ":8080",
        Data: DataConfig{
            ResultsPath:       "fcvrp_results_ILS.json",
            BestKnownPath:     "fcvrp_best_known.json",
            ValidationPath:    "validation_results_ILS.json",
            SolutionsDir:      "Solutions_ILS",
            VisualizationsDir: "Visualizations",
        },
        RateRPS:            0, // disabled unless set
        RateBurst:          0,
        AuthMode:           "dev",
        WebhookMaxAttempts: 10,
    }
}

// Load reads the YAML config file named by VRPREPORT_CONFIG (or
// ./vrpreport.yaml when present), then applies env overrides on top.
func Load() (*Config, error) {
    cfg := defaults()

    path := os.Getenv("VRPREPORT_CONFIG")
    if path == "" {
        if _, err := os.Stat("vrpreport.yaml"); err == nil {
            path = "vrpreport.yaml"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil {
            return nil, fmt.Errorf("read config %s: %w", path, err)
        }
        if err := yaml.Unmarshal(b, cfg); err != nil {
            return nil, fmt.Errorf("parse config %s: %w", path, err)
        }
    }
    cfg.applyEnv()
    return cfg, nil
}

func (c *Config) applyEnv() {
    if v := os.Getenv("PORT"); v != "" {
        c.ListenAddr = ":" + v
    }
    setStr(&c.Data.ResultsPath, "RESULTS_PATH")
    setStr(&c.Data.BestKnownPath, "BEST_KNOWN_PATH")
    setStr(&c.Data.ValidationPath, "VALIDATION_PATH")
    setStr(&c.Data.SolutionsDir, "SOLUTIONS_DIR")
    setStr(&c.Data.VisualizationsDir, "VISUALIZATIONS_DIR")
    setStr(&c.RedisURL, "REDIS_URL")
    setStr(&c.AuthMode, "AUTH_MODE")
    setStr(&c.AuthHMACSecret, "AUTH_HMAC_SECRET")
    if v := os.Getenv("RATE_RPS"); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil {
            c.RateRPS = f
        }
    }
    if v := os.Getenv("RATE_BURST"); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            c.RateBurst = n
        }
    }
    if v := os.Getenv("WEBHOOK_MAX_ATTEMPTS"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            c.WebhookMaxAttempts = n
        }
    }
}

func setStr(dst *string, key string) {
    if v := os.Getenv(key); v != "" {
        *dst = v
    }
}

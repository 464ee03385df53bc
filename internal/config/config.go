package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"azurepricing/entity"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"PRICING_ENV" env-default:"local"`
	Listen struct {
		BindIP  string        `yaml:"bind_ip" env:"LISTEN_BIND_IP" env-default:"127.0.0.1"`
		Port    string        `yaml:"port" env:"LISTEN_PORT" env-default:"8080"`
		Timeout time.Duration `yaml:"timeout" env:"LISTEN_TIMEOUT" env-default:"30s"`
	} `yaml:"listen"`
	Azure struct {
		BaseUrl      string        `yaml:"base_url" env:"AZURE_PRICES_URL" env-default:"https://prices.azure.com/api/retail/prices"`
		ApiVersion   string        `yaml:"api_version" env:"AZURE_PRICES_API_VERSION" env-default:"2023-01-01-preview"`
		Currency     string        `yaml:"currency" env:"AZURE_PRICES_CURRENCY" env-default:"USD"`
		Timeout      time.Duration `yaml:"timeout" env-default:"30s"`
		MaxRetries   int           `yaml:"max_retries" env-default:"3"`
		RetryWait    time.Duration `yaml:"retry_wait" env-default:"5s"`
		MaxPages     int           `yaml:"max_pages" env-default:"10"`
		RateLimit    float64       `yaml:"rate_limit" env-default:"5"`
		RateBurst    int           `yaml:"rate_burst" env-default:"10"`
		DefaultLimit int           `yaml:"default_limit" env-default:"50"`
	} `yaml:"azure"`
	Cache struct {
		Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
		Backend string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
		TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"1h"`
		Cleanup time.Duration `yaml:"cleanup" env-default:"10m"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
		DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
		Prefix   string `yaml:"prefix" env-default:"pricing"`
	} `yaml:"redis"`
	Catalog struct {
		Primary    entity.CatalogEntry   `yaml:"primary"`
		Additional []entity.CatalogEntry `yaml:"additional"`
	} `yaml:"catalog"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		BotName  string `yaml:"bot_name" env-default:""`
		ApiKey   string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId  string `yaml:"admin_id" env-default:""`
		MinLevel string `yaml:"min_level" env-default:"warn"`
	} `yaml:"telegram"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
		instance.applyCatalogDefaults()
	})
	return instance
}

// Load reads the config without the process-wide singleton.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	conf.applyCatalogDefaults()
	return conf, nil
}

// DefaultCatalog returns the built-in Azure Compute, Storage and Backup entries. Prices are read
// live from Azure unless an entry sets retail_price.
func DefaultCatalog() (entity.CatalogEntry, []entity.CatalogEntry) {
	primary := entity.CatalogEntry{
		Name:        "Azure Compute",
		ServiceName: "Virtual Machines",
		ArmSkuName:  "Standard_D2s_v3",
		Region:      "eastus",
		PriceType:   entity.PriceTypeConsumption,
		Quantity:    730,
	}
	additional := []entity.CatalogEntry{
		{
			Name:        "Azure Storage",
			ServiceName: "Storage",
			SkuName:     "Hot LRS",
			MeterName:   "Hot LRS Data Stored",
			Region:      "eastus",
			PriceType:   entity.PriceTypeConsumption,
			Quantity:    1024,
		},
		{
			Name:        "Azure Backup",
			ServiceName: "Backup",
			Region:      "eastus",
			PriceType:   entity.PriceTypeConsumption,
			Quantity:    1,
		},
	}
	return primary, additional
}

func (c *Config) applyCatalogDefaults() {
	primary, additional := DefaultCatalog()
	if c.Catalog.Primary.Name == "" {
		c.Catalog.Primary = primary
	}
	if len(c.Catalog.Additional) == 0 {
		c.Catalog.Additional = additional
	}
}

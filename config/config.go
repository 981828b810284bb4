package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"asp_listings/listing"
)

const (
	KindProperties = "properties"
	KindRentals    = "rentals"
	KindProjects   = "projects"
)

type Config struct {
	PropFusion PropFusionConfig
	HTTP       HTTPConfig
	Cache      CacheConfig
	Scheduler  SchedulerConfig
	LogPath    string
	LogLevel   string
	KindsDir   string
	Kinds      map[string]*KindConfig
}

type PropFusionConfig struct {
	BaseURL     string
	LeadsURL    string
	IPLookupURL string
}

type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type CacheConfig struct {
	TTL  time.Duration
	Size int
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

// KindConfig describes one listing kind: where its pages come from and which
// filters the remote endpoint understands.
type KindConfig struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Handler      string            `yaml:"handler"`
	Endpoint     string            `yaml:"endpoint"`
	Paging       string            `yaml:"paging"`
	PageSize     int               `yaml:"page_size"`
	Status       string            `yaml:"status"`
	ListingType  string            `yaml:"listing_type"`
	ItemsKey     string            `yaml:"items_key"`
	TotalKey     string            `yaml:"total_key"`
	RateLimitMS  int               `yaml:"rate_limit_ms"`
	ServerParams []string          `yaml:"server_params"`
	Detail       DetailConfig      `yaml:"detail"`
	PriceBuckets listing.BucketSet `yaml:"price_buckets"`
	Filters      FilterOptions     `yaml:"filters"`
}

// FilterOptions are the choices offered for each filter control. An empty
// list hides the control.
type FilterOptions struct {
	PropertyTypes []string            `yaml:"property_types"`
	Bedrooms      []int               `yaml:"bedrooms"`
	Furnished     []string            `yaml:"furnished"`
	Developers    []string            `yaml:"developers"`
	Sorts         []listing.SortOrder `yaml:"sorts"`
}

// DetailConfig selects how a single listing is looked up: "scan" pages
// through a large page and matches by id, "id" passes ?id= to the endpoint.
type DetailConfig struct {
	Mode     string `yaml:"mode"`
	ScanSize int    `yaml:"scan_size"`
}

const (
	PagingOffset = "offset"
	PagingPage   = "page"

	DetailScan = "scan"
	DetailByID = "id"
)

var propertyTypes = []string{"APARTMENT", "VILLA", "PENTHOUSE", "TOWNHOUSE"}

func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := getEnv("PROPFUSION_BASE_URL", "https://asp-api.propfusion.io")

	cfg := &Config{
		PropFusion: PropFusionConfig{
			BaseURL:     baseURL,
			LeadsURL:    getEnv("PROPFUSION_LEADS_URL", baseURL+"/properties/create_leads_for_website"),
			IPLookupURL: os.Getenv("IP_LOOKUP_URL"),
		},
		HTTP: HTTPConfig{
			Timeout:   getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
			UserAgent: getEnv("USER_AGENT", "asp_listings/1.0"),
		},
		Cache: CacheConfig{
			TTL:  getEnvDuration("CACHE_TTL", 2*time.Minute),
			Size: getEnvInt("CACHE_SIZE", 256),
		},
		Scheduler: SchedulerConfig{
			Cron:     os.Getenv("FEATURED_CRON"),
			Interval: getEnvDuration("FEATURED_INTERVAL", 0),
		},
		LogPath:  getEnv("LOG_PATH", "asp_listings.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		KindsDir: getEnv("KINDS_DIR", "config/kinds"),
		Kinds:    DefaultKinds(baseURL),
	}

	if os.Getenv("IP_LOOKUP_DISABLED") != "true" && cfg.PropFusion.IPLookupURL == "" {
		cfg.PropFusion.IPLookupURL = "https://api.ipify.org?format=json"
	}

	if err := cfg.loadKindConfigs(); err != nil {
		return nil, err
	}

	for id, kind := range cfg.Kinds {
		if err := kind.validate(); err != nil {
			return nil, fmt.Errorf("kind %s: %w", id, err)
		}
	}

	return cfg, nil
}

// DefaultKinds returns the three PropFusion listing kinds used by the site.
func DefaultKinds(baseURL string) map[string]*KindConfig {
	listingsURL := baseURL + "/properties/get_properties_for_main_site"
	return map[string]*KindConfig{
		KindProperties: {
			ID:           KindProperties,
			Name:         "Properties for Sale",
			Handler:      "properties",
			Endpoint:     listingsURL,
			Paging:       PagingOffset,
			PageSize:     12,
			Status:       "ACTIVE",
			ListingType:  "SELL",
			ItemsKey:     "properties",
			TotalKey:     "totalProperties",
			ServerParams: []string{"property_type", "bedrooms", "search"},
			Detail:       DetailConfig{Mode: DetailScan, ScanSize: 100},
			PriceBuckets: listing.SaleBuckets,
			Filters: FilterOptions{
				PropertyTypes: propertyTypes,
				Bedrooms:      []int{1, 2, 3, 4},
				Sorts:         []listing.SortOrder{listing.SortNewest, listing.SortPriceLow, listing.SortPriceHigh, listing.SortSizeLarge},
			},
		},
		KindRentals: {
			ID:           KindRentals,
			Name:         "Properties for Rent",
			Handler:      "rentals",
			Endpoint:     listingsURL,
			Paging:       PagingOffset,
			PageSize:     12,
			Status:       "ACTIVE",
			ListingType:  "RENT",
			ItemsKey:     "properties",
			TotalKey:     "totalProperties",
			ServerParams: []string{"property_type", "bedrooms", "search"},
			Detail:       DetailConfig{Mode: DetailScan, ScanSize: 100},
			PriceBuckets: listing.RentBuckets,
			Filters: FilterOptions{
				PropertyTypes: propertyTypes,
				Bedrooms:      []int{0, 1, 2, 3, 4},
				Furnished:     []string{"yes", "no", "partly"},
				Sorts:         []listing.SortOrder{listing.SortNewest, listing.SortPriceLow, listing.SortPriceHigh, listing.SortSizeLarge},
			},
		},
		KindProjects: {
			ID:           KindProjects,
			Name:         "Off-Plan Projects",
			Handler:      "projects",
			Endpoint:     baseURL + "/properties/projects",
			Paging:       PagingPage,
			PageSize:     12,
			Status:       "ACTIVE",
			ItemsKey:     "projects",
			TotalKey:     "totalProjects",
			ServerParams: []string{"search"},
			Detail:       DetailConfig{Mode: DetailByID},
			PriceBuckets: listing.ProjectBuckets,
			Filters: FilterOptions{
				PropertyTypes: propertyTypes,
				Developers:    []string{"Emaar", "Damac", "Sobha", "Nakheel"},
				Sorts:         []listing.SortOrder{listing.SortNewest, listing.SortPopular, listing.SortHandoverSoon},
			},
		},
	}
}

// loadKindConfigs overlays config/kinds/*.yaml onto the defaults. A file
// whose id matches a default replaces only the fields it sets.
func (c *Config) loadKindConfigs() error {
	entries, err := os.ReadDir(c.KindsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(c.KindsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var peek struct {
			ID string `yaml:"id"`
		}
		if err := yaml.Unmarshal(data, &peek); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if peek.ID == "" {
			return fmt.Errorf("%s: missing id", path)
		}

		kind, ok := c.Kinds[peek.ID]
		if !ok {
			kind = &KindConfig{}
			c.Kinds[peek.ID] = kind
		}
		if err := yaml.Unmarshal(data, kind); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func (k *KindConfig) validate() error {
	if k.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if k.Paging != PagingOffset && k.Paging != PagingPage {
		return fmt.Errorf("paging must be %q or %q, got %q", PagingOffset, PagingPage, k.Paging)
	}
	if k.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}
	if k.ItemsKey == "" || k.TotalKey == "" {
		return fmt.Errorf("items_key and total_key are required")
	}
	return nil
}

// SendsParam reports whether the filter param is forwarded to the endpoint.
func (k *KindConfig) SendsParam(name string) bool {
	for _, p := range k.ServerParams {
		if p == name {
			return true
		}
	}
	return false
}

// KindIDs returns the configured kind ids in a stable order.
func (c *Config) KindIDs() []string {
	ids := make([]string, 0, len(c.Kinds))
	for id := range c.Kinds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Config) Kind(id string) (*KindConfig, error) {
	kind, ok := c.Kinds[id]
	if !ok {
		return nil, fmt.Errorf("unknown listing kind: %s", id)
	}
	return kind, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"innsight/internal/domain/model"
)

// Config 應用程式全體的設定
type Config struct {
	Server    ServerConfig
	Nominatim NominatimConfig
	ORS       ORSConfig
	Overpass  OverpassConfig
	Cache     CacheConfig
	Postgres  PostgresConfig
	Recommend RecommendConfig
}

// ServerConfig HTTP 伺服器的設定
type ServerConfig struct {
	Port           int
	GinMode        string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NominatimConfig 地理編碼服務的設定
type NominatimConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// ORSConfig 等時圈服務的設定
type ORSConfig struct {
	URL     string
	APIKey  string
	Profile string
	Timeout time.Duration
}

// OverpassConfig OSM 資料服務的設定
type OverpassConfig struct {
	URL     string
	Timeout time.Duration
}

// CacheConfig 等時圈快取的設定
// RedisAddr 有設定時使用 Redis，否則使用行程內快取
type CacheConfig struct {
	TTL       time.Duration
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// PostgresConfig 住宿資料本地鏡像的設定
// Source 為 "postgres" 時以資料表取代 Overpass
type PostgresConfig struct {
	DSN    string
	Source string
}

// RecommendConfig 推薦管線的設定
type RecommendConfig struct {
	// DefaultTopN 回應的預設筆數上限
	DefaultTopN int
	// MultiDayTierCeiling 多日行程（查詢只講天數、沒講車程）時的等級上限
	// 天數對分鐘數的換算上游並未定義，因此以可設定的等級上限表現
	MultiDayTierCeiling model.Tier
	// BoundPadding OSM 查詢範圍的外擴度數
	BoundPadding float64
	// RatingWeights 綜合評分各組成的權重
	RatingWeights model.RatingWeights
}

// Load 從環境變數讀取設定。.env 檔存在時一併載入。
func Load() (*Config, error) {
	_ = godotenv.Load()

	orsURL := os.Getenv("ORS_URL")
	if orsURL == "" {
		return nil, fmt.Errorf("ORS_URL 環境變數未設定")
	}
	orsAPIKey := os.Getenv("ORS_API_KEY")
	if orsAPIKey == "" {
		return nil, fmt.Errorf("ORS_API_KEY 環境變數未設定")
	}

	ceiling, err := tierFromMinutes(getEnvAsInt("MULTI_DAY_TIER_CEILING_MINUTES", 60))
	if err != nil {
		return nil, err
	}

	weights := ratingWeightsFromEnv()
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGINS", "*")},
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Nominatim: NominatimConfig{
			URL:       getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("NOMINATIM_USER_AGENT", "innsight"),
			Timeout:   time.Duration(getEnvAsInt("NOMINATIM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		ORS: ORSConfig{
			URL:     orsURL,
			APIKey:  orsAPIKey,
			Profile: getEnv("ORS_PROFILE", "driving-car"),
			Timeout: time.Duration(getEnvAsInt("ORS_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Overpass: OverpassConfig{
			URL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			Timeout: time.Duration(getEnvAsInt("OVERPASS_TIMEOUT_SECONDS", 25)) * time.Second,
		},
		Cache: CacheConfig{
			TTL:       time.Duration(getEnvAsInt("CACHE_TTL_HOURS", 24)) * time.Hour,
			RedisAddr: getEnv("REDIS_ADDR", ""),
			RedisPass: getEnv("REDIS_PASSWORD", ""),
			RedisDB:   getEnvAsInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			DSN:    getEnv("POSTGRES_DSN", ""),
			Source: getEnv("ACCOMMODATIONS_SOURCE", "overpass"),
		},
		Recommend: RecommendConfig{
			DefaultTopN:         getEnvAsInt("RECOMMEND_DEFAULT_TOP_N", 20),
			MultiDayTierCeiling: ceiling,
			BoundPadding:        getEnvAsFloat("OSM_BOUND_PADDING", 0.001),
			RatingWeights:       weights,
		},
	}, nil
}

// ratingWeightsFromEnv 綜合評分的權重，未設定的項目採用預設值
func ratingWeightsFromEnv() model.RatingWeights {
	defaults := model.DefaultRatingWeights()
	return model.RatingWeights{
		Tier:       getEnvAsFloat("RATING_WEIGHT_TIER", defaults.Tier),
		Rating:     getEnvAsFloat("RATING_WEIGHT_RATING", defaults.Rating),
		Parking:    getEnvAsFloat("RATING_WEIGHT_PARKING", defaults.Parking),
		Wheelchair: getEnvAsFloat("RATING_WEIGHT_WHEELCHAIR", defaults.Wheelchair),
		Kids:       getEnvAsFloat("RATING_WEIGHT_KIDS", defaults.Kids),
		Pet:        getEnvAsFloat("RATING_WEIGHT_PET", defaults.Pet),
	}
}

// tierFromMinutes 分鐘數轉等級，只接受標準等級
func tierFromMinutes(minutes int) (model.Tier, error) {
	tier := model.Tier(minutes)
	if !tier.Valid() {
		return model.TierNone, fmt.Errorf("MULTI_DAY_TIER_CEILING_MINUTES 必須是 15、30、60 其中之一，收到 %d", minutes)
	}
	return tier, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

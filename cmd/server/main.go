package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"innsight/internal/config"
	"innsight/internal/domain/parser"
	"innsight/internal/domain/repository"
	"innsight/internal/domain/service"
	"innsight/internal/handler"
	"innsight/internal/infrastructure/cache"
	"innsight/internal/infrastructure/database"
	"innsight/internal/infrastructure/nominatim"
	"innsight/internal/infrastructure/ors"
	"innsight/internal/infrastructure/overpass"
	"innsight/internal/middleware"
	repoimpl "innsight/internal/repository"
	"innsight/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定讀取失敗: %v", err)
	}

	ctx := context.Background()

	// 等時圈快取：REDIS_ADDR 有設定時共用 Redis，否則使用行程內快取
	var isochroneCache repository.IsochroneCache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPass, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err != nil {
			log.Fatalf("Redis 連線失敗: %v", err)
		}
		defer redisCache.Close()
		isochroneCache = redisCache
		log.Printf("✅ 使用 Redis 等時圈快取 (%s)", cfg.Cache.RedisAddr)
	} else {
		isochroneCache = cache.NewMemoryCache(cfg.Cache.TTL)
		log.Printf("✅ 使用行程內等時圈快取 (TTL: %s)", cfg.Cache.TTL)
	}

	// 住宿資料來源：預設 Overpass，有本地鏡像時可切換 Postgres
	var accommodations repository.AccommodationsRepository
	if cfg.Postgres.Source == "postgres" {
		pgClient, err := database.NewPostgreSQLClientWithRetry(cfg.Postgres.DSN, 3, 2*time.Second)
		if err != nil {
			log.Fatalf("PostgreSQL 連線失敗: %v", err)
		}
		defer pgClient.Close()
		accommodations = repoimpl.NewPostgresAccommodationsRepository(pgClient)
		log.Printf("✅ 住宿資料來源: PostgreSQL")
	} else {
		accommodations = overpass.NewClient(cfg.Overpass.URL, cfg.Overpass.Timeout)
		log.Printf("✅ 住宿資料來源: Overpass (%s)", cfg.Overpass.URL)
	}

	geocoder := nominatim.NewClient(cfg.Nominatim.URL, cfg.Nominatim.UserAgent, cfg.Nominatim.Timeout)
	isochroneProvider := ors.NewClient(cfg.ORS.URL, cfg.ORS.APIKey, cfg.ORS.Profile, cfg.ORS.Timeout)
	resolver := service.NewIsochroneResolver(isochroneProvider, isochroneCache)
	ranker := service.NewRankingService()
	rater := service.NewRatingService(cfg.Recommend.RatingWeights)

	recommendUseCase := usecase.NewRecommendUseCase(
		parser.NewQueryParser(),
		geocoder,
		resolver,
		accommodations,
		ranker,
		rater,
		cfg.Recommend,
	)

	recommendHandler := handler.NewRecommendHandler(recommendUseCase)
	healthHandler := handler.NewHealthHandler(map[string]string{
		"nominatim": cfg.Nominatim.URL,
		"ors":       cfg.ORS.URL,
		"overpass":  cfg.Overpass.URL,
	}, isochroneCache)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	router.POST("/recommend", recommendHandler.PostRecommend)
	router.GET("/api/health", healthHandler.GetHealth)
	router.GET("/api/cache/stats", healthHandler.GetCacheStats)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("🚀 InnSight server starting on %s...", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("伺服器啟動失敗: %v", err)
	}
}

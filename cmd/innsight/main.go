package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"innsight/internal/config"
	"innsight/internal/domain/model"
	"innsight/internal/domain/parser"
	"innsight/internal/domain/service"
	"innsight/internal/infrastructure/cache"
	"innsight/internal/infrastructure/nominatim"
	"innsight/internal/infrastructure/ors"
	"innsight/internal/infrastructure/overpass"
	"innsight/internal/usecase"
)

// 單發查詢的命令列工具
// 用法: innsight <完整中文需求句>
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "用法: innsight <完整中文需求句>")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定讀取失敗: %v\n", err)
		return 1
	}

	// CLI 不需要跨請求共用，一律使用行程內快取
	log.SetOutput(os.Stderr)
	recommendUseCase := usecase.NewRecommendUseCase(
		parser.NewQueryParser(),
		nominatim.NewClient(cfg.Nominatim.URL, cfg.Nominatim.UserAgent, cfg.Nominatim.Timeout),
		service.NewIsochroneResolver(
			ors.NewClient(cfg.ORS.URL, cfg.ORS.APIKey, cfg.ORS.Profile, cfg.ORS.Timeout),
			cache.NewMemoryCache(cfg.Cache.TTL),
		),
		overpass.NewClient(cfg.Overpass.URL, cfg.Overpass.Timeout),
		service.NewRankingService(),
		service.NewRatingService(cfg.Recommend.RatingWeights),
		cfg.Recommend,
	)

	response, err := recommendUseCase.Recommend(context.Background(), &model.RecommendRequest{Query: args[0]})
	if err != nil {
		fmt.Fprintf(os.Stderr, "查詢失敗: %v\n", err)
		return 1
	}

	fmt.Printf("找到 %d 筆住宿\n", len(response.Results))
	for _, result := range response.Results {
		name := result.Name
		if name == "" {
			name = "(未命名)"
		}
		fmt.Printf("name: %s, tier: %d分鐘, distance: %.0fm\n",
			name, result.AssignedTier.Minutes(), result.DistanceMeters)
	}
	return 0
}

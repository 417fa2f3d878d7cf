package repository

import (
	"context"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
)

// AccommodationsRepository 指定範圍內的住宿候選查詢
type AccommodationsRepository interface {
	// FindInRegion 回傳外接矩形內的住宿候選
	// 範圍由最大的可用等時圈推導，以限制查詢量
	FindInRegion(ctx context.Context, bound orb.Bound) ([]model.AccommodationCandidate, error)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
	"innsight/internal/domain/repository"
	"innsight/internal/infrastructure/database"
)

// PostgresAccommodationsRepository OSM 住宿資料本地鏡像的查詢實作
// 以 accommodations 資料表取代 Overpass 呼叫（由設定切換）
type PostgresAccommodationsRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresAccommodationsRepository 建立 Postgres 實作
func NewPostgresAccommodationsRepository(client *database.PostgreSQLClient) repository.AccommodationsRepository {
	return &PostgresAccommodationsRepository{client: client}
}

// accommodationRow 資料表的一筆查詢結果
type accommodationRow struct {
	ID      string
	OSMType string
	Name    sql.NullString
	Lat     float64
	Lng     float64
	Tourism sql.NullString
	Tags    []byte // JSONB
}

// toCandidate accommodationRow 轉為領域模型
func (r *accommodationRow) toCandidate() (model.AccommodationCandidate, error) {
	tags := map[string]string{}
	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &tags); err != nil {
			return model.AccommodationCandidate{}, fmt.Errorf("tags JSONB 解析失敗: %w", err)
		}
	}

	amenities := []model.FilterFlag{}
	for _, flag := range model.AllFilterFlags() {
		if tags[string(flag)] == "yes" {
			amenities = append(amenities, flag)
		}
	}

	return model.AccommodationCandidate{
		ID:        r.ID,
		OSMType:   r.OSMType,
		Name:      r.Name.String,
		Location:  model.LatLng{Lat: r.Lat, Lng: r.Lng},
		Tourism:   r.Tourism.String,
		Amenities: amenities,
		Tags:      tags,
	}, nil
}

// FindInRegion 外接矩形內的住宿候選
func (p *PostgresAccommodationsRepository) FindInRegion(ctx context.Context, bound orb.Bound) ([]model.AccommodationCandidate, error) {
	query := `SELECT id, osm_type, name, lat, lng, tourism, tags
		FROM accommodations
		WHERE lat BETWEEN $1 AND $2 AND lng BETWEEN $3 AND $4`

	rows, err := p.client.DB.QueryContext(ctx, query,
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
	if err != nil {
		return nil, &model.UpstreamError{
			Service: "postgres",
			Err:     fmt.Errorf("住宿資料查詢失敗: %w", err),
		}
	}
	defer rows.Close()

	var candidates []model.AccommodationCandidate
	for rows.Next() {
		var row accommodationRow
		if err := rows.Scan(&row.ID, &row.OSMType, &row.Name, &row.Lat, &row.Lng, &row.Tourism, &row.Tags); err != nil {
			return nil, fmt.Errorf("住宿資料掃描失敗: %w", err)
		}
		candidate, err := row.toCandidate()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.UpstreamError{
			Service: "postgres",
			Err:     fmt.Errorf("住宿資料讀取中斷: %w", err),
		}
	}
	return candidates, nil
}

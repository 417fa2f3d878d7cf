package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgreSQLClient PostgreSQL 連線的包裝
// 住宿資料有本地鏡像時作為 Overpass 以外的資料來源使用
type PostgreSQLClient struct {
	DB *sql.DB
}

// NewPostgreSQLClient 以連線字串建立 PostgreSQL 用戶端
func NewPostgreSQLClient(dsn string) (*PostgreSQLClient, error) {
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN 環境變數未設定")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL 連線初始化失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("PostgreSQL 連線失敗: %w", err)
	}

	return &PostgreSQLClient{DB: db}, nil
}

// NewPostgreSQLClientWithRetry 建立用戶端，失敗時以固定間隔重試
func NewPostgreSQLClientWithRetry(dsn string, maxAttempts int, interval time.Duration) (*PostgreSQLClient, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		client, err := NewPostgreSQLClient(dsn)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(interval)
	}
	return nil, fmt.Errorf("PostgreSQL 連線重試 %d 次後仍失敗: %w", maxAttempts, lastErr)
}

// Close 關閉資料庫連線
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck 資料庫連線的健康檢查
func (pc *PostgreSQLClient) HealthCheck() error {
	if pc.DB == nil {
		return fmt.Errorf("PostgreSQL 用戶端尚未初始化")
	}
	return pc.DB.Ping()
}

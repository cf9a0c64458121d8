package storage

import (
	"context"
	"time"
)

// StorageProvider определяет интерфейс для работы с объектным хранилищем (S3)
type StorageProvider interface {
	// Загрузка и скачивание по подписанным ссылкам
	GeneratePresignedPutURL(ctx context.Context, key, contentType string, size int64, lifetime time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, key, fileName string, lifetime time.Duration) (string, error)

	// Служебные методы
	GetObjectSize(ctx context.Context, key string) (int64, error)
	GetObjectHeader(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Photo - фотография оборудования, приложенная к заявке
type Photo struct {
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Size int64     `json:"size"`
	At   time.Time `json:"uploaded_at"`
}

type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient создает клиент для MinIO
func NewMinIOClient(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Создаем bucket если не существует
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// requestPrefix - каталог фотографий одной заявки
func requestPrefix(requestID int) string {
	return fmt.Sprintf("requests/%d/", requestID)
}

// PhotoObjectName генерирует уникальное имя объекта на латинице
func PhotoObjectName(requestID int, originalFilename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%sphoto_%s_%d%s",
		requestPrefix(requestID),
		uuid.New().String()[:8],
		now.Unix(),
		ext)
}

// ContentType определяет тип по расширению; неизвестные типы не принимаются
func ContentType(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".webp":
		return "image/webp", true
	}
	return "", false
}

// UploadRequestPhoto загружает фото к заявке и возвращает имя объекта
func (m *MinIOClient) UploadRequestPhoto(ctx context.Context, requestID int, fileData []byte, originalFilename string) (string, error) {
	contentType, ok := ContentType(originalFilename)
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(originalFilename))
	}

	name := PhotoObjectName(requestID, originalFilename, time.Now())
	reader := bytes.NewReader(fileData)
	_, err := m.client.PutObject(ctx, m.bucketName, name, reader, int64(len(fileData)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logrus.Infof("File %s uploaded successfully", name)
	return name, nil
}

// ListRequestPhotos возвращает фото заявки с временными ссылками (1 час)
func (m *MinIOClient) ListRequestPhotos(ctx context.Context, requestID int) ([]Photo, error) {
	var photos []Photo
	for object := range m.client.ListObjects(ctx, m.bucketName, minio.ListObjectsOptions{
		Prefix: requestPrefix(requestID),
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list photos: %w", object.Err)
		}

		url, err := m.client.PresignedGetObject(ctx, m.bucketName, object.Key, time.Hour, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
		}

		photos = append(photos, Photo{
			Name: path.Base(object.Key),
			URL:  url.String(),
			Size: object.Size,
			At:   object.LastModified,
		})
	}
	return photos, nil
}

// DeleteFile удаляет файл из MinIO
func (m *MinIOClient) DeleteFile(ctx context.Context, filename string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, filename, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", filename)
	return nil
}

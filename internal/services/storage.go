package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

// LocalUploadDir renvoie le répertoire disque des images produits
func LocalUploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./images/products"
	}
	return dir
}

// SaveUpload stocke un fichier sous products/<name> (MinIO) ou
// <UPLOAD_DIR>/<name> (disque local) et renvoie son URL publique
func SaveUpload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if MinioClient != nil {
		objectName := "products/" + name
		_, err := MinioClient.PutObject(
			ctx,
			os.Getenv("MINIO_BUCKET"),
			objectName,
			r,
			size,
			minio.PutObjectOptions{ContentType: contentType},
		)
		if err != nil {
			return "", err
		}
		scheme := "http"
		if os.Getenv("MINIO_USE_SSL") == "true" {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s",
			scheme,
			os.Getenv("MINIO_ENDPOINT"),
			os.Getenv("MINIO_BUCKET"),
			objectName,
		), nil
	}

	dir := LocalUploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return "images/products/" + name, nil
}

// RemoveUpload supprime une image stockée ; os.ErrNotExist si elle n'existe pas
func RemoveUpload(ctx context.Context, name string) error {
	if MinioClient != nil {
		objectName := "products/" + name
		bucket := os.Getenv("MINIO_BUCKET")
		if _, err := MinioClient.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{}); err != nil {
			return os.ErrNotExist
		}
		return MinioClient.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	}

	path := filepath.Join(LocalUploadDir(), name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.ErrNotExist
	}
	return os.Remove(path)
}

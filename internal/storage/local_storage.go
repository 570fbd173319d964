package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"serwer-dostepu/internal/models"
)

var ErrInvalidPath = errors.New("item path cannot be mapped to a storage location")

const contentFile = "content"

// LocalStorage keeps document content on disk, one directory per path
// segment, so a subtree of items maps onto a subtree of directories.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) getPathForItem(item models.Item) (string, error) {
	segments := strings.Split(item.Path, ".")
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, ls.basePath)
	for _, s := range segments {
		if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, item.Path)
		}
		parts = append(parts, s)
	}
	parts = append(parts, contentFile)
	return filepath.Join(parts...), nil
}

func (ls *LocalStorage) Save(item models.Item, data io.Reader) error {
	filePath, err := ls.getPathForItem(item)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (ls *LocalStorage) Get(item models.Item) (io.ReadCloser, error) {
	filePath, err := ls.getPathForItem(item)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("content of item %s not found: %w", item.ID, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(item models.Item) error {
	filePath, err := ls.getPathForItem(item)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// Package keyring stores secrets in the operating system keyring via
// 99designs/keyring, preferring native backends and falling back to an
// encrypted file backend.
package keyring

import (
	"context"
	"errors"
	"fmt"

	kr "github.com/99designs/keyring"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

const serviceName = "mailwatch"

type Store struct {
	fileDir string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(fileDir string) *Store {
	return &Store{fileDir: fileDir}
}

func (s *Store) open() (kr.Keyring, error) {
	ring, err := kr.Open(kr.Config{
		ServiceName: serviceName,
		AllowedBackends: []kr.BackendType{
			kr.KeychainBackend,
			kr.SecretServiceBackend,
			kr.WinCredBackend,
			kr.PassBackend,
			kr.FileBackend,
		},
		FileDir:                  s.fileDir,
		FilePasswordFunc:         kr.FixedStringPrompt(serviceName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ring, err := s.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		if errors.Is(err, kr.ErrKeyNotFound) {
			return "", fmt.Errorf("keyring secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("get keyring secret %q: %w", key, err)
	}
	return string(item.Data), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ring, err := s.open()
	if err != nil {
		return err
	}

	if err := ring.Set(kr.Item{Key: key, Data: []byte(value)}); err != nil {
		return fmt.Errorf("set keyring secret %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ring, err := s.open()
	if err != nil {
		return err
	}

	if err := ring.Remove(key); err != nil && !errors.Is(err, kr.ErrKeyNotFound) {
		return fmt.Errorf("delete keyring secret %q: %w", key, err)
	}
	return nil
}

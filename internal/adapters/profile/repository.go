// Package profile persists account profiles in a TOML file.
package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

const (
	schemaVersion = 1

	dirMode         = 0o700
	fileMode        = 0o600
	tempFilePattern = ".profiles-*.toml.tmp"
)

type Repository struct {
	path string
	mu   sync.Mutex
}

var _ ports.ProfileRepository = (*Repository)(nil)

func NewRepository(path string) *Repository {
	return &Repository{path: filepath.Clean(path)}
}

type schema struct {
	Version  int             `toml:"version"`
	Profiles []profileRecord `toml:"profiles"`
}

type profileRecord struct {
	Name      string `toml:"name"`
	Address   string `toml:"address"`
	BaseURL   string `toml:"base_url"`
	SecretRef string `toml:"secret_ref"`
}

func (r profileRecord) toDomain() domain.Profile {
	return domain.Profile{
		Name:      r.Name,
		Address:   r.Address,
		BaseURL:   r.BaseURL,
		SecretRef: r.SecretRef,
	}
}

func toRecord(p domain.Profile) profileRecord {
	return profileRecord{
		Name:      p.Name,
		Address:   p.Address,
		BaseURL:   p.BaseURL,
		SecretRef: p.SecretRef,
	}
}

func (r *Repository) GetByName(ctx context.Context, name string) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return domain.Profile{}, err
	}

	for _, record := range data.Profiles {
		if record.Name == name {
			return record.toDomain(), nil
		}
	}
	return domain.Profile{}, fmt.Errorf("profile %q: %w", name, domain.ErrProfileNotFound)
}

func (r *Repository) List(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(data.Profiles))
	for _, record := range data.Profiles {
		profiles = append(profiles, record.toDomain())
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// Save inserts the profile or replaces an existing one with the same
// name.
func (r *Repository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(profile.Name) == "" {
		return &domain.ValidationError{Field: "profile name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, record := range data.Profiles {
		if record.Name == profile.Name {
			data.Profiles[i] = toRecord(profile)
			replaced = true
			break
		}
	}
	if !replaced {
		data.Profiles = append(data.Profiles, toRecord(profile))
	}
	return r.save(data)
}

func (r *Repository) load() (schema, error) {
	data := schema{Version: schemaVersion}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data, nil
		}
		return data, fmt.Errorf("read profiles file: %w", err)
	}

	if err := toml.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse profiles file: %w", err)
	}
	return data, nil
}

func (r *Repository) save(data schema) error {
	data.Version = schemaVersion

	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp profiles file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp profiles file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace profiles file: %w", err)
	}
	return nil
}

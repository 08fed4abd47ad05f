package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bnema/mailwatch-cli/internal/adapters/mailapi"
	profilerepo "github.com/bnema/mailwatch-cli/internal/adapters/profile"
	chainstore "github.com/bnema/mailwatch-cli/internal/adapters/secrets/chain"
	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/logging"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

const (
	configDirName   = ".mailwatch"
	defaultProfile  = "default"
	credentialsFile = "credentials.toml"
	profilesFile    = "profiles.toml"
)

type app struct {
	cfg        *viper.Viper
	profiles   ports.ProfileRepository
	secrets    ports.SecretStore
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	cfg := viper.New()
	cfg.SetConfigFile(filepath.Join(configDir, "config.toml"))
	cfg.SetConfigType("toml")
	cfg.SetEnvPrefix("MW")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("profile", defaultProfile)
	cfg.SetDefault("base_url", "")
	cfg.SetDefault("debug", false)
	cfg.SetDefault("request.timeout_ms", 10_000)
	cfg.SetDefault("watch.interval_ms", 15_000)
	cfg.SetDefault("watch.page_size", 50)
	cfg.SetDefault("watch.first_cycle", "backlog")
	cfg.SetDefault("watch.prefix", "")
	cfg.SetDefault("handler.command", "")
	cfg.SetDefault("handler.mark_read", false)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	log, err := logging.New(cfg.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	secrets, err := chainstore.NewKeyringFirstWithFileFallback(
		filepath.Join(configDir, "keyring"),
		filepath.Join(configDir, credentialsFile),
	)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		cfg:        cfg,
		profiles:   profilerepo.NewRepository(filepath.Join(configDir, profilesFile)),
		secrets:    secrets,
		httpClient: http.DefaultClient,
		log:        log,
	}, nil
}

func (a *app) requestTimeout() time.Duration {
	return time.Duration(a.cfg.GetInt("request.timeout_ms")) * time.Millisecond
}

func (a *app) profileName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.cfg.GetString("profile")
}

func secretRef(profileName string) string {
	return fmt.Sprintf("mailwatch://%s/credentials", profileName)
}

// mailboxFor builds an authenticated mail client for the named profile
// from its stored credentials.
func (a *app) mailboxFor(ctx context.Context, profileName string) (*mailapi.Client, error) {
	prof, err := a.profiles.GetByName(ctx, profileName)
	if err != nil {
		return nil, fmt.Errorf("load profile %q (run \"mw login\" first): %w", profileName, err)
	}

	creds, err := a.credentialsFor(ctx, prof.SecretRef)
	if err != nil {
		return nil, err
	}

	baseURL := prof.BaseURL
	if baseURL == "" {
		baseURL = a.cfg.GetString("base_url")
	}
	if baseURL == "" {
		return nil, errors.New("no base URL configured for profile " + profileName)
	}

	api := mailapi.API{BaseURL: baseURL}
	sessions := mailapi.NewSessionManager(api, creds, a.httpClient, ports.SystemClock{}, a.requestTimeout(), a.log)
	return mailapi.NewClient(api, sessions, a.httpClient, a.requestTimeout(), a.log), nil
}

func (a *app) credentialsFor(ctx context.Context, ref string) (domain.Credentials, error) {
	raw, err := a.secrets.Get(ctx, ref)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load credentials %q: %w", ref, err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode credentials %q: %w", ref, err)
	}
	return creds, nil
}

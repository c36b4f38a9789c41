package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides: api.base_url is read from
// CREATORHUB_API_BASE_URL
const EnvPrefix = "CREATORHUB"

const maxPageSize = 100

var (
	configDir       string
	credentialsPath string
)

// pathKeys hold filesystem paths and get ~ expanded
var pathKeys = map[string]bool{
	"log.file": true,
}

func defaults(dir string) map[string]interface{} {
	return map[string]interface{}{
		"api.base_url":               "http://localhost:8787",
		"api.timeout":                30,
		"output.format":              "text",
		"feed.page_size":             20,
		"realtime.enabled":           true,
		"realtime.url":               "ws://localhost:8787/api/v1/ws",
		"realtime.heartbeat_seconds": 30,
		"log.level":                  "info",
		"log.file":                   filepath.Join(dir, "creatorhub.log"),
		"metrics.addr":               "",
	}
}

// userConfigDir is ~/.config/creatorhub/cli, or %LOCALAPPDATA%\creatorhub\cli
func userConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = os.Getenv("APPDATA")
		}
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = home
		}
		return filepath.Join(base, "creatorhub", "cli"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "creatorhub", "cli"), nil
}

func systemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "CreatorHub", "cli", "config.toml")}
	}
	return []string{
		"/etc/creatorhub/cli/config.toml",
		"/usr/local/etc/creatorhub/cli/config.toml",
	}
}

// Init loads settings in increasing priority: defaults, the first system
// config found, the user config at configPath (or the default location),
// then CREATORHUB_* environment variables.
func Init(configPath string) error {
	file := configPath
	if file == "" {
		dir, err := userConfigDir()
		if err != nil {
			return err
		}
		file = filepath.Join(dir, "config.toml")
	}
	configDir = filepath.Dir(file)
	credentialsPath = filepath.Join(configDir, "credentials")

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	viper.Reset()
	viper.SetConfigType("toml")
	for key, value := range defaults(configDir) {
		viper.SetDefault(key, value)
	}

	for _, path := range systemConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := merge(path); err != nil {
				return err
			}
			break
		}
	}
	if err := merge(file); err != nil {
		return err
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return validate()
}

// merge layers a TOML file over what is already loaded; a missing file is fine
func merge(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func validate() error {
	if n := viper.GetInt("feed.page_size"); n < 1 || n > maxPageSize {
		return fmt.Errorf("feed.page_size must be between 1 and %d, got %d", maxPageSize, n)
	}
	if viper.GetBool("realtime.enabled") {
		u := viper.GetString("realtime.url")
		if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
			return fmt.Errorf("realtime.url must be a ws:// or wss:// URL, got %q", u)
		}
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string setting
func GetString(key string) string {
	value := viper.GetString(key)
	if pathKeys[key] {
		return expandPath(value)
	}
	return value
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Seconds reads an integer setting counted in seconds, like api.timeout
func Seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

// Override sets a value for this process only
func Override(key string, value interface{}) {
	viper.Set(key, value)
}

func GetConfigDir() string {
	return configDir
}

// GetCredentialsPath is where credentials.Save writes, next to the config
func GetCredentialsPath() string {
	return credentialsPath
}

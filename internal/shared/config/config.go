package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

const (
	configDirName = ".pkgdeck"
	envPrefix     = "PKGDECK"
)

var (
	cfgFile  string
	apiURL   string
	apiToken string
)

// File is the on-disk layout of ~/.pkgdeck/config.yaml
type File struct {
	URL    string            `yaml:"url,omitempty"`
	Token  string            `yaml:"token,omitempty"`
	Locale string            `yaml:"locale,omitempty"`
	Apps   map[string]string `yaml:"apps,omitempty"`
}

// App is a named application from the config file
type App struct {
	Name  string `json:"name" yaml:"name"`
	AppID string `json:"appId" yaml:"appId"`
}

// InitConfig initializes the shared configuration system
func InitConfig() {
	cobra.OnInitialize(loadConfig)
}

// AddFlags adds common configuration flags to a cobra command
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pkgdeck/config.yaml)")
	cmd.PersistentFlags().StringVar(&apiURL, "url", "", "packages API base URL")
	cmd.PersistentFlags().StringVar(&apiToken, "token", "", "packages API token")

	// Bind flags to viper
	viper.BindPFlag("url", cmd.PersistentFlags().Lookup("url"))
	viper.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))
}

// loadConfig loads configuration from file and environment
func loadConfig() {
	path, err := Path()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetDefault("locale", "en")

	// Read environment variables
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env may carry everything
	_ = viper.ReadInConfig()
}

// Path returns the config file in use: the --config flag, or ~/.pkgdeck/config.yaml
func Path() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName, "config.yaml"), nil
}

// GetURL returns the configured packages API base URL
func GetURL() string {
	if apiURL != "" {
		return apiURL
	}
	return viper.GetString("url")
}

// GetToken returns the configured packages API token
func GetToken() string {
	if apiToken != "" {
		return apiToken
	}
	return viper.GetString("token")
}

// GetLocale returns the locale used to render dates
func GetLocale() string {
	return viper.GetString("locale")
}

// ValidateConfig validates that required configuration is present
func ValidateConfig() error {
	if GetURL() == "" {
		return fmt.Errorf("packages API URL is required (set PKGDECK_URL env var, --url flag, or url in config file)")
	}
	if GetToken() == "" {
		return fmt.Errorf("packages API token is required (set PKGDECK_TOKEN env var, --token flag, or token in config file)")
	}
	return nil
}

// ReadFile loads the config file. A missing file yields an empty File.
func ReadFile() (*File, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// WriteFile replaces the config file, creating its directory if needed
func WriteFile(f *File) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// The file holds a token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Apps returns the configured applications sorted by name
func Apps() ([]App, error) {
	f, err := ReadFile()
	if err != nil {
		return nil, err
	}

	apps := make([]App, 0, len(f.Apps))
	for name, appID := range f.Apps {
		apps = append(apps, App{Name: name, AppID: appID})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps, nil
}

// SetApp adds or replaces an application
func SetApp(name, appID string) error {
	f, err := ReadFile()
	if err != nil {
		return err
	}
	if f.Apps == nil {
		f.Apps = map[string]string{}
	}
	f.Apps[name] = appID
	return WriteFile(f)
}

// RemoveApp deletes an application by name
func RemoveApp(name string) error {
	f, err := ReadFile()
	if err != nil {
		return err
	}
	if _, ok := f.Apps[name]; !ok {
		return fmt.Errorf("application %q is not configured", name)
	}
	delete(f.Apps, name)
	return WriteFile(f)
}

// ResolveApp maps a reference to an application. The reference may be a configured
// name or an app ID; unknown references are used as an app ID with no name.
func ResolveApp(ref string) (App, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return App{}, fmt.Errorf("application name or app ID is required")
	}

	f, err := ReadFile()
	if err != nil {
		return App{}, err
	}
	return resolveApp(f.Apps, ref), nil
}

func resolveApp(apps map[string]string, ref string) App {
	if appID, ok := apps[ref]; ok {
		return App{Name: ref, AppID: appID}
	}
	for name, appID := range apps {
		if appID == ref {
			return App{Name: name, AppID: appID}
		}
	}
	return App{Name: ref, AppID: ref}
}

// ConfigureRequest represents configuration input
type ConfigureRequest struct {
	URL   string
	Token string
}

// ConfigureInteractive runs interactive configuration on the terminal
func ConfigureInteractive(currentURL, currentToken string) (*ConfigureRequest, error) {
	reader := bufio.NewReader(os.Stdin)

	readSecret := func() (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return reader.ReadString('\n')
		}
		// Read token without echo
		b, err := term.ReadPassword(fd)
		fmt.Println() // Add newline after password input
		return string(b), err
	}

	return prompt(reader, os.Stdout, readSecret, currentURL, currentToken)
}

func prompt(reader *bufio.Reader, out io.Writer, readSecret func() (string, error), currentURL, currentToken string) (*ConfigureRequest, error) {
	// Get URL
	fmt.Fprint(out, "Packages API URL")
	if currentURL != "" {
		fmt.Fprintf(out, " [%s]", currentURL)
	}
	fmt.Fprint(out, ": ")

	urlInput, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && urlInput != "") {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	urlInput = strings.TrimSpace(urlInput)
	if urlInput == "" && currentURL != "" {
		urlInput = currentURL
	}

	// Get token
	fmt.Fprint(out, "Packages API token")
	if currentToken != "" {
		fmt.Fprint(out, " [hidden]")
	}
	fmt.Fprint(out, ": ")

	tokenInput, err := readSecret()
	if err != nil && !(errors.Is(err, io.EOF) && tokenInput != "") {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	tokenInput = strings.TrimSpace(tokenInput)
	if tokenInput == "" && currentToken != "" {
		tokenInput = currentToken
	}

	// Validate required fields
	if urlInput == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if tokenInput == "" {
		return nil, fmt.Errorf("token is required")
	}

	return &ConfigureRequest{
		URL:   strings.TrimRight(urlInput, "/"),
		Token: tokenInput,
	}, nil
}

// SaveConfig stores the URL and token, keeping the configured applications
func SaveConfig(out io.Writer, req ConfigureRequest) error {
	f, err := ReadFile()
	if err != nil {
		return err
	}
	f.URL = req.URL
	f.Token = req.Token

	if err := WriteFile(f); err != nil {
		return err
	}

	viper.Set("url", req.URL)
	viper.Set("token", req.Token)

	path, _ := Path()
	fmt.Fprintf(out, "Configuration saved to %s\n", path)
	fmt.Fprintln(out, "\nConfiguration:")
	fmt.Fprintf(out, "  URL:   %s\n", req.URL)
	fmt.Fprintf(out, "  Token: %s\n", models.MaskToken(req.Token))

	return nil
}

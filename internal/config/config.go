package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lewallen4/flightplight/internal/logging"
)

// Config holds all configuration for the generator, divided into partial
// configurations per concern.
type Config struct {
	// Output controls where pages land and how they are written.
	Output OutputConfig `mapstructure:"output"`
	// OpenSky configures the live flight data source.
	OpenSky OpenSkyConfig `mapstructure:"opensky"`
	// Airport configures the metadata enrichment APIs.
	Airport AirportConfig `mapstructure:"airport"`
	// Serve configures the local preview server.
	Serve ServeConfig `mapstructure:"serve"`
	// Log holds configuration for the logger.
	Log logging.Config `mapstructure:"log"`
}

// OutputConfig controls the output directory.
type OutputConfig struct {
	Dir  string `mapstructure:"dir" default:"public"`
	Gzip bool   `mapstructure:"gzip" default:"false"`
}

// OpenSkyConfig configures the OpenSky client. All fields are optional;
// with no credentials the client runs anonymously at the lower rate limit.
type OpenSkyConfig struct {
	BaseURL         string `mapstructure:"base_url" default:"https://opensky-network.org/api"`
	ClientID        string `mapstructure:"client_id" default:""`
	ClientSecret    string `mapstructure:"client_secret" default:""`
	Username        string `mapstructure:"username" default:""`
	Password        string `mapstructure:"password" default:""`
	CredentialsFile string `mapstructure:"credentials_file" default:"credentials.json"`
}

// AirportConfig configures the enrichment APIs used by the full fares page.
// An empty APIKey disables metadata lookups; the run proceeds on catalog
// values alone.
type AirportConfig struct {
	APIKey      string `mapstructure:"api_key" default:""`
	MetadataURL string `mapstructure:"metadata_url" default:"https://api.api-ninjas.com/v1/airports"`
	WikiURL     string `mapstructure:"wiki_url" default:"https://en.wikipedia.org/api/rest_v1"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Port string `mapstructure:"port" default:"8080"`
}

// Load loads configuration from environment variables and an optional .env
// file. Environment keys map to nested keys with underscores, e.g.
// OUTPUT_DIR -> output.dir, AIRPORT_API_KEY -> airport.api_key.
func Load(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to register defaults
	bindValues(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags. Defaults
// are registered with their field's type so Unmarshal never has to coerce.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		switch field.Type.Kind() {
		case reflect.Bool:
			b, _ := strconv.ParseBool(defaultValue)
			v.SetDefault(key, b)
		case reflect.Int, reflect.Int64:
			n, _ := strconv.Atoi(defaultValue)
			v.SetDefault(key, n)
		default:
			v.SetDefault(key, defaultValue)
		}
	}
}

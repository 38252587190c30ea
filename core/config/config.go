package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"nuscenes-devkit/core/database"
	"nuscenes-devkit/core/logger"
	"nuscenes-devkit/core/metrics"
	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/server"
	"nuscenes-devkit/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Dataset selects the dataset version and location.
	Dataset nusc.Config `mapstructure:"dataset"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the export database.
	Database database.Config `mapstructure:"database"`
	// Metrics holds configuration for the Prometheus endpoint.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATASET_VERSION -> dataset.version)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DatasetRoot returns the configured dataroot. A bucket dataroot without a
// bucket name (s3:///prefix) uses the storage bucket.
func (c *Config) DatasetRoot() string {
	root := c.Dataset.Dataroot
	if rest, ok := strings.CutPrefix(root, nusc.BucketScheme+"/"); ok {
		return nusc.BucketScheme + c.Storage.Bucket + "/" + rest
	}
	return root
}

// UsesStorage reports whether the dataset is read from object storage.
func (c *Config) UsesStorage() bool {
	return strings.HasPrefix(c.DatasetRoot(), nusc.BucketScheme)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
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

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

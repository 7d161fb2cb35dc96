package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/spf13/viper"
)

// Init wires viper to the config file, the environment and the defaults.
// A missing config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "phototools"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("phototools")
	}

	viper.SetEnvPrefix("PHOTOTOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers a default for every key
func SetDefaults() {
	viper.SetDefault("convert.input", "./images/todo")
	viper.SetDefault("convert.output", "./images/processed")
	viper.SetDefault("convert.quality", 85)
	viper.SetDefault("editor.folder", "./images/todo")
	viper.SetDefault("editor.working_file", "output.json")
	viper.SetDefault("editor.camera", models.DefaultCamera)
	viper.SetDefault("editor.lens", models.DefaultLens)
	viper.SetDefault("catalog.path", "./data/portfolio.json")
	viper.SetDefault("catalog.reset_on_corrupt", false)
	viper.SetDefault("sort.output_dir", "sorted")
	viper.SetDefault("suggest.provider", "ollama")
	viper.SetDefault("suggest.model", "")
	viper.SetDefault("suggest.temperature", 0.2)
}

// GetConvertInput returns the default source folder for conversion
func GetConvertInput() string {
	return viper.GetString("convert.input")
}

// GetConvertOutput returns the default destination folder for conversion
func GetConvertOutput() string {
	return viper.GetString("convert.output")
}

// GetConvertQuality returns the default WebP quality
func GetConvertQuality() int {
	return viper.GetInt("convert.quality")
}

// GetEditorFolder returns the folder the editor opens when none is given
func GetEditorFolder() string {
	return viper.GetString("editor.folder")
}

// GetWorkingFile returns the per-folder working file name
func GetWorkingFile() string {
	return viper.GetString("editor.working_file")
}

func GetCamera() string {
	return viper.GetString("editor.camera")
}

func GetLens() string {
	return viper.GetString("editor.lens")
}

// GetCatalogPath returns the global catalog location
func GetCatalogPath() string {
	return viper.GetString("catalog.path")
}

// GetResetOnCorrupt reports whether an unparseable catalog is replaced instead of refused
func GetResetOnCorrupt() bool {
	return viper.GetBool("catalog.reset_on_corrupt")
}

// GetSortOutputDir returns the merge-sort output subdirectory name
func GetSortOutputDir() string {
	return viper.GetString("sort.output_dir")
}

func GetSuggestProvider() string {
	return viper.GetString("suggest.provider")
}

func GetSuggestModel() string {
	return viper.GetString("suggest.model")
}

func GetSuggestTemperature() float64 {
	return viper.GetFloat64("suggest.temperature")
}

// GetCategories builds the category set from the "categories" list,
// falling back to the built-in defaults
func GetCategories() (models.CategorySet, error) {
	var items []models.Category
	if viper.IsSet("categories") {
		if err := viper.UnmarshalKey("categories", &items); err != nil {
			return models.CategorySet{}, fmt.Errorf("failed to parse categories: %w", err)
		}
	}
	if len(items) == 0 {
		items = models.DefaultCategories
	}
	return models.NewCategorySet(items)
}

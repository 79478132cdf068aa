package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// FileName 配置文件名
const FileName = "lume.toml"

// Config lume 配置
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

// ParserConfig 语法分析选项
type ParserConfig struct {
	CheckAssignTarget bool `toml:"check_assign_target"`
	RetainErrors      bool `toml:"retain_errors"`
	MaxErrors         int  `toml:"max_errors"` // 0 表示不限制
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format   string `toml:"format"`   // tree, dot, yaml
	Language string `toml:"language"` // en, zh，空表示自动检测
	Color    bool   `toml:"color"`
}

var (
	validLevels     = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
	validFormats    = []string{"tree", "dot", "yaml"}
	validLanguages  = []string{"", "en", "zh"}
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "tree",
			Color:  true,
		},
	}
}

// FindAndLoad 从指定目录向上查找 lume.toml 并加载，没找到时返回默认配置
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile 从指定目录向上查找 lume.toml
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load 加载配置文件，未设置的字段取默认值
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ApplyEnv 用环境变量覆盖配置
func (c *Config) ApplyEnv() {
	c.Log.Level = strings.ToLower(env.Str("LUME_LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(env.Str("LUME_LOG_FORMAT", c.Log.Format))
	c.Output.Language = env.Str("LUME_LANG", c.Output.Language)
	c.Parser.MaxErrors = env.Int("LUME_MAX_ERRORS", c.Parser.MaxErrors)
	if env.Bool("LUME_NO_COLOR") || env.Has("NO_COLOR") {
		c.Output.Color = false
	}
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q (want one of %s)", c.Log.Level, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if !slices.Contains(validLanguages, c.Output.Language) {
		return fmt.Errorf("invalid language %q (want en or zh)", c.Output.Language)
	}
	if c.Parser.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.Parser.MaxErrors)
	}
	return nil
}

// GetProjectRoot 获取项目根目录（lume.toml 所在目录）
func GetProjectRoot(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}

// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Stability     StabilityConfig     `yaml:"stability" mapstructure:"stability"`
	Studio        StudioConfig        `yaml:"studio" mapstructure:"studio"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	// MaxBodyBytes 请求体大小上限
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// StabilityConfig 上游 Stability AI 配置
type StabilityConfig struct {
	// APIKey 为空时服务仍可启动，但生成接口返回配置错误
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Engine  string        `yaml:"engine" mapstructure:"engine"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// StudioConfig 终端工作室（前端）配置
type StudioConfig struct {
	APIURL      string        `yaml:"api_url" mapstructure:"api_url"`
	DownloadDir string        `yaml:"download_dir" mapstructure:"download_dir"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// SpeechCommand 外部语音识别命令，输出识别文本到 stdout；为空表示不支持语音输入
	SpeechCommand string `yaml:"speech_command" mapstructure:"speech_command"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	CORS CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	// FrontendURL 允许的唯一前端来源；为空时允许所有来源
	FrontendURL string `yaml:"frontend_url" mapstructure:"frontend_url"`
}

// HasAPIKey 是否配置了上游 API Key
func (c StabilityConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

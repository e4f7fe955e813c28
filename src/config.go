package mambo

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type ClusterConfig struct {
	ExpectedNodes int `mapstructure:"expected_nodes"`
}

type TrainingConfig struct {
	Mode                  string  `mapstructure:"mode"` // "sync" or "async"
	Epochs                int     `mapstructure:"epochs"`
	BatchSize             int     `mapstructure:"batch_size"`
	MaxSteps              int64   `mapstructure:"max_steps"`
	CheckEvery            int64   `mapstructure:"check_every"`
	LeakCoef              float64 `mapstructure:"leak_coef"`
	MonitorBackoffSeconds int     `mapstructure:"monitor_backoff_seconds"`
	ConvergenceEpsilon    float64 `mapstructure:"convergence_epsilon"`
}

type SecurityConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	JWTSecretName     string `mapstructure:"jwt_secret_name"`
	TLSCertSecretName string `mapstructure:"tls_cert_secret_name"`
	TLSKeySecretName  string `mapstructure:"tls_key_secret_name"`
}

type GCPConfig struct {
	Project       string `mapstructure:"project"`
	RecordsBucket string `mapstructure:"records_bucket"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Cluster  ClusterConfig  `mapstructure:"cluster"`
	Training TrainingConfig `mapstructure:"training"`
	Security SecurityConfig `mapstructure:"security"`
	GCP      GCPConfig      `mapstructure:"gcp"`
	Data     DataConfig     `mapstructure:"data"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LoadConfig reads and validates the master configuration.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50051)
	v.SetDefault("training.mode", "sync")
	v.SetDefault("training.epochs", 10)
	v.SetDefault("training.batch_size", 32)
	v.SetDefault("training.max_steps", 10000)
	v.SetDefault("training.check_every", 100)
	v.SetDefault("training.leak_coef", 1.0)
	v.SetDefault("training.monitor_backoff_seconds", 2)
	v.SetDefault("training.convergence_epsilon", 1e-6)
	v.SetDefault("logging.level", "INFO")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}
	if conf.Cluster.ExpectedNodes < 1 {
		return nil, fmt.Errorf("config: cluster.expected_nodes must be at least 1")
	}
	if conf.Training.Mode != "sync" && conf.Training.Mode != "async" {
		return nil, fmt.Errorf("config: training.mode must be sync or async, got %q", conf.Training.Mode)
	}
	return &conf, nil
}

func monitorBackoff(cfg *Config) time.Duration {
	if cfg.Training.MonitorBackoffSeconds <= 0 {
		return defaultMonitorBackoff
	}
	return time.Duration(cfg.Training.MonitorBackoffSeconds) * time.Second
}

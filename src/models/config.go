package models

// MConfig Structure
type MConfig struct {
	Name                   string `yaml:"name"`
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	LogLevel               string `yaml:"log_level"`
	GrpcHost               string `yaml:"grpc_host"`
	GrpcPort               int    `yaml:"grpc_port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	CorsOriginPrefix       string `yaml:"cors_origin_prefix"`
}

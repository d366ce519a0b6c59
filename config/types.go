package config

// APIConfig contains upstream endpoint configuration
type APIConfig struct {
	Key          string `yaml:"key"`
	StopsURL     string `yaml:"stopsURL" validate:"omitempty,url"`
	ArrivalsURL  string `yaml:"arrivalsURL" validate:"omitempty,url"`
	FollowURL    string `yaml:"followURL" validate:"omitempty,url"`
	PositionsURL string `yaml:"positionsURL" validate:"omitempty,url"`
	Timezone     string `yaml:"timezone" validate:"omitempty,timezone"`
}

// TransportConfig contains outbound HTTP configuration
type TransportConfig struct {
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
	TLSPolicy string `yaml:"tlsPolicy" validate:"omitempty,oneof=legacy modern"`
	UserAgent string `yaml:"userAgent"`
}

// LoggingConfig contains log output configuration
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	API       APIConfig       `yaml:"api"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

package config

// Config contains all application settings
type Config struct {
	BindPort      int    `mapstructure:"PORT" yaml:"port"`
	BindHost      string `mapstructure:"HOST" yaml:"host"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" yaml:"database_url"`
	NATSServerURL string `mapstructure:"NATS_URL" yaml:"nats_url"`

	// Agent session tuning. KeyReleaseDelayMillis is the quiet period after
	// which a held key combination is auto-released. ReconnectDelaySeconds is
	// the pause between TCP redial attempts against an unreachable agent.
	KeyReleaseDelayMillis int `mapstructure:"KEY_RELEASE_DELAY_MS" yaml:"key_release_delay_ms"`
	ReconnectDelaySeconds int `mapstructure:"RECONNECT_DELAY_S" yaml:"reconnect_delay_s"`

	// Version
	BuildVersion string `yaml:"-"`
	BuildHash    string `yaml:"-"`
	BuildTime    string `yaml:"-"`
}

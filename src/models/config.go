package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	DailyCron  string            `yaml:"daily_cron"`
	Storage    MStorageConfig    `yaml:"storage"`
	Generation MGenerationConfig `yaml:"generation"`
	Game       MGameConfig       `yaml:"game"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MGameConfig struct {
	Difficulties          []MDifficultyConfig `yaml:"difficulties"`
	ChoiceCount           int                 `yaml:"choice_count"`
	DecoyBandPct          float64             `yaml:"decoy_band_pct"`
	MaxGenerationAttempts int                 `yaml:"max_generation_attempts"`
	RoundTTLMinutes       int                 `yaml:"round_ttl_minutes"`
	RecentOutcomes        int                 `yaml:"recent_outcomes"`
}

type MDifficultyConfig struct {
	Name       string `yaml:"name"`
	HiddenDays int    `yaml:"hidden_days"`
	BaseScore  int    `yaml:"base_score"`
}

// MEnvOverrides are optional environment overrides applied on top of the
// YAML file (processed with envconfig under the CHART prefix).
type MEnvOverrides struct {
	Host               string `envconfig:"HOST"`
	Port               int    `envconfig:"PORT"`
	LogLevel           string `envconfig:"LOG_LEVEL"`
	DBType             string `envconfig:"DB_TYPE"`
	DBPath             string `envconfig:"DB_PATH"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
}

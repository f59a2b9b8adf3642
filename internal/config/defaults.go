package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Telegram: TelegramConfig{
			ParseMode: "HTML",
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Audit: AuditConfig{
			MaxEntries: 0, // unbounded, matching the process-lifetime contract
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

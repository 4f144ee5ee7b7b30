package config

import (
	"os"

	"github.com/Veraticus/finsight/internal/sheets"
	"github.com/spf13/viper"
)

// sheetsSetting maps a viper key, and optionally a GOOGLE_SHEETS_* fallback
// variable, onto one string field of sheets.Config.
type sheetsSetting struct {
	field func(*sheets.Config) *string
	key   string
	env   string
	path  bool
}

var sheetsSettings = []sheetsSetting{
	{key: "sheets.service_account_path", env: "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", path: true,
		field: func(c *sheets.Config) *string { return &c.ServiceAccountPath }},
	{key: "sheets.client_id", env: "GOOGLE_SHEETS_CLIENT_ID",
		field: func(c *sheets.Config) *string { return &c.ClientID }},
	{key: "sheets.client_secret", env: "GOOGLE_SHEETS_CLIENT_SECRET",
		field: func(c *sheets.Config) *string { return &c.ClientSecret }},
	{key: "sheets.refresh_token", env: "GOOGLE_SHEETS_REFRESH_TOKEN",
		field: func(c *sheets.Config) *string { return &c.RefreshToken }},
	{key: "sheets.spreadsheet_id", env: "GOOGLE_SHEETS_SPREADSHEET_ID",
		field: func(c *sheets.Config) *string { return &c.SpreadsheetID }},
	{key: "sheets.spreadsheet_name",
		field: func(c *sheets.Config) *string { return &c.SpreadsheetName }},
	{key: "sheets.time_zone",
		field: func(c *sheets.Config) *string { return &c.TimeZone }},
}

// LoadSheetsConfig builds the Google Sheets configuration. Each setting is
// taken from viper (config file or FINSIGHT_SHEETS_* variables), then from
// its GOOGLE_SHEETS_* variable, then from sheets.DefaultConfig.
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	for _, s := range sheetsSettings {
		v := viper.GetString(s.key)
		if v == "" && s.env != "" {
			v = os.Getenv(s.env)
		}
		if v == "" {
			continue
		}
		if s.path {
			v = ExpandPath(v)
		}
		*s.field(&config) = v
	}

	if viper.IsSet("sheets.batch_size") {
		config.BatchSize = viper.GetInt("sheets.batch_size")
	}
	if viper.IsSet("sheets.retry_attempts") {
		config.RetryAttempts = viper.GetInt("sheets.retry_attempts")
	}
	if viper.IsSet("sheets.retry_delay") {
		config.RetryDelay = viper.GetDuration("sheets.retry_delay")
	}
	if viper.IsSet("sheets.formatting") {
		config.EnableFormatting = viper.GetBool("sheets.formatting")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/promogpt/promoctl/internal/flagx"
	"github.com/promogpt/promoctl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as "15s" or as
// integer nanoseconds. Zero values mean "not set" and leave the overlaid
// Config field untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CredentialsDB  string         `json:"credentials_db"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. No flag, no JSON. Read or unmarshal errors panic; the
// config file was named explicitly, so a broken one should not be ignored.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CredentialsDB != "" {
		cfg.CredentialsDB = jc.CredentialsDB
	}
}

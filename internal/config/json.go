package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given as duration strings like "30s".
type jsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	DatabaseDSN    string `json:"database_dsn"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJSON overlays Config with values loaded from a JSON file named by
// the -c or -config flags. An absent flag means no JSON is loaded. Read or
// unmarshal errors panic; the caller decides whether to recover.
func parseJSON(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

// jsonConfigPath extracts the config file path from the -c/-config flags,
// ignoring all other arguments.
func jsonConfigPath() string {
	var path string

	args := filterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}

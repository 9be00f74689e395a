package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSpreadsheetID is the shared record sheet used when no override is
// configured.
const defaultSpreadsheetID = "1n-jQhBD5u2jsv_cQskF81xy9p6lM5ZLcgmix22mQpho"

type Config struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	SheetName     string `yaml:"sheet_name"`
	ListenAddr    string `yaml:"listen_addr"`
}

// LoadConfig reads the optional yaml config file and applies environment
// overrides on top. Every field has a usable default.
func LoadConfig(path string) (Config, error) {
	config := Config{
		SpreadsheetID: defaultSpreadsheetID,
		SheetName:     "Sheet1",
		ListenAddr:    ":8080",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return config, fmt.Errorf("failed to read config %s: %v", path, err)
			}
		} else if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config %s: %v", path, err)
		}
	}

	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		config.SpreadsheetID = v
	}
	if v := os.Getenv("SHEET_NAME"); v != "" {
		config.SheetName = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}

	return config, nil
}

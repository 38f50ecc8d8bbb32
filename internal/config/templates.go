package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# stock-manager configuration

[store]
# Persistence backend: "sqlite" (single-table database) or "json" (flat file).
backend = "sqlite"
# db_path = "~/.config/stock-manager/stocks.db"
# data_file = "~/.config/stock-manager/stocks.json"
# Reject plans that reuse an existing stock symbol.
unique_symbol = true

[logging]
level = "info"
console = true
file = true
# file_path = "~/.config/stock-manager/logs/stockman.log"
max_size = 20
max_backups = 3
max_age = 30
`

// writeTemplate writes a commented config.toml so a first run leaves an
// editable file behind. Existing files are never overwritten.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

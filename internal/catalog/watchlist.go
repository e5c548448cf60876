package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// Entry is one watched exchange in the watchlist file. An empty Symbols list
// means every instrument the exchange reports.
type Entry struct {
	Exchange string   `json:"exchange" yaml:"exchange"`
	Symbols  []string `json:"symbols" yaml:"symbols"`
	Enabled  *bool    `json:"enabled" yaml:"enabled"`

	parsed tardis.Exchange
}

// ExchangeID returns the validated exchange identifier.
func (e Entry) ExchangeID() tardis.Exchange { return e.parsed }

// EnabledValue returns the enabled flag defaulting to true.
func (e Entry) EnabledValue() bool {
	if e.Enabled == nil {
		return true
	}
	return *e.Enabled
}

// WantsSymbol reports whether the entry's symbol filter admits the symbol.
func (e Entry) WantsSymbol(symbol string) bool {
	if len(e.Symbols) == 0 {
		return true
	}
	for _, s := range e.Symbols {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}

type watchlistFile struct {
	Exchanges []Entry `json:"exchanges" yaml:"exchanges"`
}

// LoadWatchlist reads the watchlist from a YAML/JSON file, validating every
// exchange against the supported set.
func LoadWatchlist(path string) ([]Entry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("watchlist file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	parsed, err := parseWatchlist(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Exchanges) == 0 {
		return nil, errors.New("watchlist file contains no exchanges entries")
	}

	seen := make(map[tardis.Exchange]struct{}, len(parsed.Exchanges))
	out := make([]Entry, 0, len(parsed.Exchanges))
	for i, entry := range parsed.Exchanges {
		exchange, err := tardis.ParseExchange(entry.Exchange)
		if err != nil {
			return nil, fmt.Errorf("exchanges[%d]: %w", i, err)
		}
		if _, dup := seen[exchange]; dup {
			return nil, fmt.Errorf("exchanges[%d]: duplicate exchange %q", i, exchange)
		}
		seen[exchange] = struct{}{}

		entry.Exchange = exchange.String()
		entry.parsed = exchange
		entry.Symbols = cleanSymbols(entry.Symbols)
		out = append(out, entry)
	}

	return out, nil
}

// EnabledEntries filters the watchlist down to entries that are enabled.
func EnabledEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.EnabledValue() {
			out = append(out, e)
		}
	}
	return out
}

func parseWatchlist(data []byte, ext string) (watchlistFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		ext string
		fn  func([]byte, any) error
	}{
		{ext: ".yaml", fn: yaml.Unmarshal},
		{ext: ".yml", fn: yaml.Unmarshal},
		{ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var wl watchlistFile
		if err := d.fn(data, &wl); err == nil {
			return wl, nil
		}
	}

	return watchlistFile{}, errors.New("watchlist file format not recognized (expected YAML or JSON)")
}

func cleanSymbols(symbols []string) []string {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

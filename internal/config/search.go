package config

// SearchConfig holds search engine defaults
type SearchConfig struct {
	// HistoryLimit caps how many history entries `history list` returns
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`

	// DefaultSort is the sort key applied when none is requested
	// (name, date or size)
	DefaultSort string `mapstructure:"default_sort" yaml:"default_sort"`

	// DefaultOrder is asc or desc
	DefaultOrder string `mapstructure:"default_order" yaml:"default_order"`
}

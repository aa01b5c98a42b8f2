package state

// Config holds the user choices that survive index rebuilds.
type Config struct {
	Roots          []string `json:"roots"`
	Extensions     []string `json:"extensions"`
	SortKey        string   `json:"sort_key,omitempty"`
	SortDescending bool     `json:"sort_descending,omitempty"`
	TreeKind       string   `json:"tree_kind,omitempty"`
}

// GetConfig returns the stored config, or (nil, nil) when none was stored.
func (m *Manager) GetConfig() (*Config, error) {
	blob, err := get(m.db, keyConfig)
	if err != nil {
		return nil, ioError("get", keyConfig, err)
	}
	if blob == nil {
		return nil, nil //nolint:nilnil // no stored config is valid on first run
	}
	var cfg Config
	if err := json.Unmarshal(blob, &cfg); err != nil {
		return nil, corruptError("get", keyConfig, err)
	}
	return &cfg, nil
}

// PutConfig replaces the stored config.
func (m *Manager) PutConfig(cfg Config) error {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return ioError("put", keyConfig, err)
	}
	if err := put(m.db, keyConfig, blob); err != nil {
		return ioError("put", keyConfig, err)
	}
	return nil
}

package cli

// Flags are the persistent command-line settings shared by every command.
// Empty fields leave the configured value alone.
type Flags struct {
	ConfigPath string
	URL        string
	Dir        string
	Key        string
	LogLevel   string
	Redis      string
}

// Overrides translates the set flags into dotted config paths.
// A URL or a directory also selects the matching source type, and a Redis
// address enables the Redis cache.
func (f Flags) Overrides() map[string]any {
	out := make(map[string]any)
	if f.URL != "" {
		out["source.type"] = "camunda"
		out["source.url"] = f.URL
	}
	if f.Dir != "" {
		out["source.type"] = "file"
		out["source.dir"] = f.Dir
	}
	if f.Key != "" {
		out["process_key"] = f.Key
	}
	if f.LogLevel != "" {
		out["log.level"] = f.LogLevel
	}
	if f.Redis != "" {
		out["cache.type"] = "redis"
		out["cache.addr"] = f.Redis
	}
	return out
}

package status

import "time"

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string
	Shell   string

	// Configuration
	Config ConfigInfo

	// Catalog cache
	Cache CacheInfo

	// Completion surface
	Registry RegistryInfo
}

// ConfigInfo describes the configuration file state
type ConfigInfo struct {
	Path       string
	Exists     bool
	Valid      bool
	Errors     []string
	APIURL     string
	AuthMethod string // "api key", "username/password" or "none"
}

// CacheInfo describes the catalog cache file
type CacheInfo struct {
	Path    string
	Exists  bool
	Size    int64
	Entries int
	Updated time.Time
}

// RegistryInfo summarizes the completable command surface
type RegistryInfo struct {
	Commands int
	Options  int
}

// Package status provides status information collection and display for redtime.
package status

import (
	"encoding/json"
	"os"

	"github.com/redtime-cli/redtime/internal/config"
	"github.com/redtime-cli/redtime/internal/registry"
	"github.com/redtime-cli/redtime/internal/shell"
	"github.com/redtime-cli/redtime/pkg/version"
)

// CollectAll gathers all status information for the status view
func CollectAll(configPath, cachePath string, reg *registry.Registry) *Data {
	data := &Data{
		Version: version.Version,
		Shell:   shell.DetectShell(),
	}
	if data.Shell == "" {
		data.Shell = "unknown"
	}

	collectConfigInfo(&data.Config, configPath)
	collectCacheInfo(&data.Cache, cachePath)
	collectRegistryInfo(&data.Registry, reg)

	return data
}

func collectConfigInfo(info *ConfigInfo, path string) {
	info.Path = path
	info.AuthMethod = "none"

	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	info.Exists = true

	result, err := config.ValidateWithSchema(path, content)
	if err != nil {
		info.Errors = append(info.Errors, err.Error())
		return
	}
	for _, verr := range result.Errors {
		info.Errors = append(info.Errors, verr.Field+": "+verr.Message)
	}

	cfg, err := config.Load(path)
	if err != nil {
		info.Errors = append(info.Errors, err.Error())
		return
	}
	if err := cfg.Validate(); err != nil {
		info.Errors = append(info.Errors, err.Error())
	}

	info.Valid = len(info.Errors) == 0
	info.APIURL = cfg.APIURL

	switch {
	case cfg.APIKey != "":
		info.AuthMethod = "api key"
	case cfg.Username != "":
		info.AuthMethod = "username/password"
	}
}

func collectCacheInfo(info *CacheInfo, path string) {
	info.Path = path

	stat, err := os.Stat(path)
	if err != nil {
		return
	}
	info.Exists = true
	info.Size = stat.Size()
	info.Updated = stat.ModTime()

	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(content, &entries); err != nil {
		return
	}
	info.Entries = len(entries)
}

func collectRegistryInfo(info *RegistryInfo, reg *registry.Registry) {
	for _, cmd := range reg.Commands() {
		info.Commands++
		info.Options += len(cmd.Options)
	}
}

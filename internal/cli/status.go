package cli

import (
	"fmt"

	"github.com/redtime-cli/redtime/internal/registry"
	"github.com/redtime-cli/redtime/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	CachePath  string
}

// Status displays the current redtime configuration status
func Status(params StatusParams) error {
	data := status.CollectAll(params.ConfigPath, params.CachePath, registry.Default())

	output := status.Render(data)
	fmt.Println(output)

	return nil
}

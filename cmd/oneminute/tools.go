package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-minute-gemma/one-minute-agent/comm"
	"github.com/one-minute-gemma/one-minute-agent/emergency"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

var toolsDomain string

// toolsCmd prints the tool catalogue
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the registered tool catalogue as JSON",
	Long: `Prints every tool the agents can call, with name, description,
parameter schema and domain. Filter with --domain (emergency, communication).`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsDomain, "domain", "d", "", "Only list tools in this domain")
}

func runTools(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	bus := comm.NewEmergencyBus(func(o *comm.BusOptions) { o.Logger = logger })

	registry := tool.NewRegistry(func(o *tool.RegistryOptions) { o.Logger = logger })
	registry.RegisterProvider(emergency.NewProvider(func(o *emergency.ProviderOptions) {
		o.Logger = logger
		o.ImageDir = cfg.Tools.ImageDir
	}))
	registry.RegisterProvider(comm.NewOperatorTools(bus, func(o *comm.ToolsOptions) { o.Logger = logger }))
	registry.RegisterProvider(comm.NewVictimTools(bus, func(o *comm.ToolsOptions) { o.Logger = logger }))

	specs := registry.Specs(toolsDomain)
	out, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tool specs: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

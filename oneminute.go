// Package oneminute provides a high-level facade over the emergency
// coordination core: the inter-agent message bus, the audit log and the
// coordinator, plus factory methods that assemble fully wired emergency
// response agents. Most applications interact with this package by:
//  1. Creating a System via New() (optionally overriding config and logging)
//  2. Building agents through NewOperatorAgent / NewVictimAssistantAgent,
//     which register them with the coordinator automatically
//  3. Driving conversations through each agent's Chat method and observing
//     coordination traffic through System.Bus and System.Events
//
// All defaults are safe for local development: in-memory bus and audit log
// plus no-op logging. Pair the factories with model.NewMock for fully
// offline runs.
package oneminute

import (
	"github.com/one-minute-gemma/one-minute-agent/agent"
	"github.com/one-minute-gemma/one-minute-agent/comm"
	"github.com/one-minute-gemma/one-minute-agent/config"
	"github.com/one-minute-gemma/one-minute-agent/emergency"
	"github.com/one-minute-gemma/one-minute-agent/logging"
	"github.com/one-minute-gemma/one-minute-agent/model"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

// Agents receive their tools through the executor.
var _ agent.ToolRunner = (*tool.Executor)(nil)

// Options configures the System instance.
type Options struct {
	// Config is the resolved runtime configuration.
	Config config.Config
	// Logger receives diagnostics from every subsystem.
	Logger logging.Logger
}

// System bundles the coordination fabric shared by all agents: the priority
// bus, the bounded audit log and the coordinator binding roles to live
// agents. Factory methods build agents with their tool stacks and register
// them for message delivery.
type System struct {
	Bus         *comm.EmergencyBus
	Events      *comm.EventLog
	Coordinator *comm.Coordinator

	cfg    config.Config
	logger logging.Logger
}

// New constructs a System with defaults suitable for local development.
func New(optFns ...func(o *Options)) *System {
	opts := Options{
		Config: config.Default(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	bus := comm.NewEmergencyBus(func(o *comm.BusOptions) {
		o.Logger = opts.Logger
	})
	events := comm.NewEventLog(func(o *comm.EventLogOptions) {
		o.MaxEntries = opts.Config.Events.Capacity
		o.Logger = opts.Logger
	})
	coordinator := comm.NewCoordinator(bus, events, func(o *comm.CoordinatorOptions) {
		o.Logger = opts.Logger
	})

	return &System{
		Bus:         bus,
		Events:      events,
		Coordinator: coordinator,
		cfg:         opts.Config,
		logger:      opts.Logger,
	}
}

// Config returns the configuration the System was built with.
func (s *System) Config() config.Config { return s.cfg }

// NewOperatorAgent builds, wires and registers the operator-facing agent.
// Its tool set combines the emergency action and sensor tools with dispatch
// messaging toward the victim assistant. Reasoning bounds come from the
// configuration; optFns run last and may override anything.
func (s *System) NewOperatorAgent(provider model.Provider, optFns ...func(o *agent.Options)) *agent.Agent {
	exec := s.newExecutor(
		emergency.NewProvider(func(o *emergency.ProviderOptions) {
			o.Logger = s.logger
			o.ImageDir = s.cfg.Tools.ImageDir
		}),
		comm.NewOperatorTools(s.Bus, func(o *comm.ToolsOptions) {
			o.Logger = s.logger
		}),
	)

	fns := append([]func(o *agent.Options){func(o *agent.Options) {
		o.MaxIterations = s.cfg.Agent.MaxIterations
		o.ShowThinking = s.cfg.Agent.ShowThinking
		o.Logger = s.logger
	}}, optFns...)

	ag := agent.NewOperator(provider, exec, fns...)
	s.Coordinator.RegisterAgent(comm.RoleOperator, ag)

	return ag
}

// NewVictimAssistantAgent builds, wires and registers the victim-facing
// agent. Its tool set is the coordination tools toward the operator:
// situation updates, escalations and status reports. The preset's deeper
// reasoning bound is kept; optFns run last and may override anything.
func (s *System) NewVictimAssistantAgent(provider model.Provider, optFns ...func(o *agent.Options)) *agent.Agent {
	exec := s.newExecutor(
		comm.NewVictimTools(s.Bus, func(o *comm.ToolsOptions) {
			o.Logger = s.logger
		}),
	)

	fns := append([]func(o *agent.Options){func(o *agent.Options) {
		o.ShowThinking = s.cfg.Agent.ShowThinking
		o.Logger = s.logger
	}}, optFns...)

	ag := agent.NewVictimAssistant(provider, exec, fns...)
	s.Coordinator.RegisterAgent(comm.RoleVictimAssistant, ag)

	return ag
}

// newExecutor assembles a registry from the given providers and wraps it in
// an executor sharing the system logger.
func (s *System) newExecutor(providers ...tool.Provider) *tool.Executor {
	reg := tool.NewRegistry(func(o *tool.RegistryOptions) {
		o.Logger = s.logger
	})
	for _, p := range providers {
		reg.RegisterProvider(p)
	}

	return tool.NewExecutor(reg, func(o *tool.ExecutorOptions) {
		o.Logger = s.logger
	})
}

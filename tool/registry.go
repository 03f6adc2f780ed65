package tool

import (
	"sort"
	"sync"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// RegistryOptions holds configuration overrides passed to NewRegistry.
type RegistryOptions struct {
	// Logger receives registration diagnostics.
	Logger logging.Logger
}

// Registry stores tool definitions keyed by name. Registering a duplicate
// name overwrites the previous definition with a warning. All methods are
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Definition
	logger logging.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Registry{
		tools:  make(map[string]Definition),
		logger: opts.Logger,
	}
}

// Register adds a definition, overwriting any existing tool with the same
// name. Definitions without a domain are filed under "general".
func (r *Registry) Register(def Definition) {
	if def.Domain == "" {
		def.Domain = "general"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		r.logger.Warn("tool.register.overwrite", "tool", def.Name)
	}

	r.tools[def.Name] = def
	r.logger.Debug("tool.register", "tool", def.Name, "domain", def.Domain)
}

// RegisterProvider registers every definition supplied by the provider.
func (r *Registry) RegisterProvider(p Provider) {
	for _, def := range p.Tools() {
		r.Register(def)
	}
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Specs returns the model-facing view of registered tools, optionally
// filtered by domain. Pass an empty domain for all tools.
func (r *Registry) Specs(domain string) map[string]Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make(map[string]Spec)
	for name, def := range r.tools {
		if domain != "" && def.Domain != domain {
			continue
		}
		specs[name] = Spec{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
			Domain:      def.Domain,
		}
	}

	return specs
}

// Domains returns the sorted set of domains with at least one tool.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, def := range r.tools {
		seen[def.Domain] = struct{}{}
	}

	domains := make([]string, 0, len(seen))
	for d := range seen {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	return domains
}

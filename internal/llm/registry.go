package llm

import "fmt"

// ProviderFactory builds a Provider from ambient configuration.
type ProviderFactory func() (Provider, error)

var factories = make(map[string]ProviderFactory)

// RegisterProvider makes a provider available under name. Called from
// the provider package's init.
func RegisterProvider(name string, factory ProviderFactory) {
	factories[name] = factory
}

// NewProvider instantiates the provider registered under name.
func NewProvider(name string) (Provider, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}

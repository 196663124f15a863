package config

import "sync"

// Provider loads Settings at most once and hands out the same instance on
// every call. It is safe for concurrent use.
//
// A Provider is created by the program entry point; the resulting *Settings
// is passed explicitly to the components that need it.
type Provider struct {
	opts []Option

	once     sync.Once
	settings *Settings
	err      error
}

// NewProvider creates a Provider that calls Load with opts on first use.
func NewProvider(opts ...Option) *Provider {
	return &Provider{opts: opts}
}

// Get returns the cached Settings, loading them on the first call.
// A load failure is cached as well; the environment is not re-read.
func (p *Provider) Get() (*Settings, error) {
	p.once.Do(func() {
		p.settings, p.err = Load(p.opts...)
	})
	return p.settings, p.err
}

// Package provider holds the registry used to select external backends by
// name at startup.
//
// Backend packages expose a Factory that builds an instance from a generic
// option map. The service registers the factories it ships with and creates
// the one named in configuration:
//
//	reg := provider.NewRegistry[summarization.Provider]()
//	reg.RegisterFactory(openai.ProviderName, openai.Factory(log))
//	s, err := reg.Create(cfg.Summarization.Provider, opts)
package provider

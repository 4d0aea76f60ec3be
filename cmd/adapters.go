package main

import (
	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/config"
	"github.com/Cloud-payto/optical-sub002/internal/enrich"
	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/parse"
	"github.com/Cloud-payto/optical-sub002/internal/registry"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
	"github.com/Cloud-payto/optical-sub002/pkg/europa"
	"github.com/Cloud-payto/optical-sub002/pkg/kenmark"
	"github.com/Cloud-payto/optical-sub002/pkg/luxottica"
	"github.com/Cloud-payto/optical-sub002/pkg/marchon"
	"github.com/Cloud-payto/optical-sub002/pkg/modernoptical"
	"github.com/Cloud-payto/optical-sub002/pkg/safilo"
)

// buildRegistry wires every vendor adapter from configuration. Each adapter
// gets its own per-run cache and a retry policy from its vendor section.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()

	retryFor := func(vc config.VendorConfig) resilience.RetryConfig {
		return resilience.RetryConfig{MaxAttempts: vc.MaxRetries, Delay: vc.RetryDelay()}
	}
	httpFor := func(vc config.VendorConfig) *httpx.Client {
		return httpx.New(httpx.Options{Timeout: vc.Timeout()})
	}
	baseURL := func(vc config.VendorConfig, opt func(string)) {
		if vc.BaseURL != "" {
			opt(vc.BaseURL)
		}
	}

	adapters := []registry.Adapter{}

	{
		vc := cfg.Safilo
		opts := []safilo.Option{safilo.WithHTTP(httpFor(vc)), safilo.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, safilo.WithBaseURL(u)) })
		client := safilo.NewClient(vc.APIKey, opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewSafiloParser(),
			Enricher: enrich.NewSafilo(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	{
		vc := cfg.ModernOptical
		opts := []modernoptical.Option{modernoptical.WithHTTP(httpFor(vc)), modernoptical.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, modernoptical.WithBaseURL(u)) })
		client := modernoptical.NewClient(opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewModernOpticalParser(),
			Enricher: enrich.NewModernOptical(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	{
		vc := cfg.Luxottica
		opts := []luxottica.Option{luxottica.WithHTTP(httpFor(vc)), luxottica.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, luxottica.WithBaseURL(u)) })
		if vc.APIKey != "" {
			opts = append(opts, luxottica.WithAPIKey(vc.APIKey))
		}
		client := luxottica.NewClient(opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewLuxotticaParser(),
			Enricher: enrich.NewLuxottica(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	{
		vc := cfg.Marchon
		opts := []marchon.Option{marchon.WithHTTP(httpFor(vc)), marchon.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, marchon.WithBaseURL(u)) })
		client := marchon.NewClient(opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewMarchonParser(),
			Enricher: enrich.NewMarchon(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	{
		vc := cfg.Europa
		opts := []europa.Option{europa.WithHTTP(httpFor(vc)), europa.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, europa.WithBaseURL(u)) })
		client := europa.NewClient(opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewEuropaParser(),
			Enricher: enrich.NewEuropa(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	{
		vc := cfg.Kenmark
		opts := []kenmark.Option{kenmark.WithHTTP(httpFor(vc)), kenmark.WithRetry(retryFor(vc))}
		baseURL(vc, func(u string) { opts = append(opts, kenmark.WithBaseURL(u)) })
		client := kenmark.NewClient(opts...)
		adapters = append(adapters, registry.Adapter{
			Parser:   parse.NewKenmarkParser(),
			Enricher: enrich.NewKenmark(client, cache.NewMemory(), vc.MinConfidence),
		})
	}

	for _, a := range adapters {
		if err := reg.Register(a); err != nil {
			return nil, eris.Wrap(err, "register adapter")
		}
	}
	return reg, nil
}

package provider

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/config"
)

// Factory hands out the provider serving a chain target
type Factory interface {
	Provider(target ast.ChainTarget) (Provider, error)
}

// RPCFactory builds RPC providers from the chain config. Clients are reused
// per endpoint for the lifetime of the factory.
type RPCFactory struct {
	logger  hclog.Logger
	config  *config.Config
	metrics *Metrics

	lock    sync.Mutex
	clients map[string]*RPC
}

func NewRPCFactory(logger hclog.Logger, cfg *config.Config, metrics *Metrics) *RPCFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &RPCFactory{
		logger:  logger.Named("provider"),
		config:  cfg,
		metrics: metrics,
		clients: map[string]*RPC{},
	}
}

// URL returns the endpoint a target resolves to
func (f *RPCFactory) URL(target ast.ChainTarget) (string, error) {
	if target.RPC != "" {
		return target.RPC, nil
	}

	url := f.config.RPC(target.Chain)
	if url == "" {
		return "", fmt.Errorf("no rpc configured for chain %s", target.Chain)
	}

	return url, nil
}

func (f *RPCFactory) Provider(target ast.ChainTarget) (Provider, error) {
	url, err := f.URL(target)
	if err != nil {
		return nil, err
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if client, ok := f.clients[url]; ok {
		return client, nil
	}

	client, err := NewRPC(f.logger, url, f.metrics)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("rpc client created", "target", target.String(), "url", url)
	f.clients[url] = client

	return client, nil
}

// Requests sums the calls sent through every client
func (f *RPCFactory) Requests() uint64 {
	f.lock.Lock()
	defer f.lock.Unlock()

	var total uint64
	for _, client := range f.clients {
		total += client.Requests()
	}

	return total
}

// Close closes every client, collecting the failures
func (f *RPCFactory) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	var result *multierror.Error

	for url, client := range f.clients {
		if err := client.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close %s: %w", url, err))
		}

		delete(f.clients, url)
	}

	return result.ErrorOrNil()
}

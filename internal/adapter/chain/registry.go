package chain

import (
	"sort"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"
)

// Registry implements ports.WalletRegistry as a lookup by chain identifier.
type Registry struct {
	wallets map[domain.Chain]ports.Wallet
}

// NewRegistry indexes wallets by their chain. A later wallet for the same
// chain replaces an earlier one.
func NewRegistry(wallets ...ports.Wallet) *Registry {
	r := &Registry{wallets: make(map[domain.Chain]ports.Wallet, len(wallets))}
	for _, w := range wallets {
		r.wallets[w.Chain()] = w
	}
	return r
}

// Wallet returns the variant for chain or a validation error.
func (r *Registry) Wallet(chain domain.Chain) (ports.Wallet, error) {
	w, ok := r.wallets[chain]
	if !ok {
		return nil, apperror.ErrUnsupportedChain(string(chain))
	}
	return w, nil
}

// Chains lists the registered chains in sorted order.
func (r *Registry) Chains() []domain.Chain {
	chains := make([]domain.Chain, 0, len(r.wallets))
	for c := range r.wallets {
		chains = append(chains, c)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })
	return chains
}

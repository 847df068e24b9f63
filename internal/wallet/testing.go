package wallet

// SeedBalance is a test helper that sets the balance for an owner when using
// the in-memory store.
func SeedBalance(s Store, ownerID string, amountCoins int64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		w := mem.ensureLocked(ownerID)
		w.BalanceCoins = amountCoins
		mem.wallets[ownerID] = w
	}
}

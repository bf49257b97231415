package repositories

// RepositoryProvider bundles every repository the service layer needs.
// Implementations: pgsql (production), memory (tests and dev mode).
type RepositoryProvider struct {
	Account     AccountRepositoryFacade
	Transaction TransactionRepositoryFacade
	Receipt     ReceiptRepositoryFacade
	User        UserRepositoryFacade
}

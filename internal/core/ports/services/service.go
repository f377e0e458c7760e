package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Fees         FeeCalculatorSvc
	Quotes       QuoteProvider
	Wallet       WalletLedgerSvc
	Portfolio    PortfolioSvc
	Journal      TransactionJournalSvc
	Orchestrator OrchestratorSvc
}

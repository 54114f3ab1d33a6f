package services

// ServicesContainer bundles every service facade the HTTP layer consumes.
type ServicesContainer struct {
	User     UserSvcFacade
	Auth     AuthSvcFacade
	Bank     BankSvcFacade
	Draft    DraftSvcFacade
	Card     CardSvcFacade
	Vote     VoteSvcFacade
	Product  ProductSvcFacade
	Currency CurrencySvcFacade
}

package client

// Set - все клиенты API, собранные вместе для обработчиков и CLI.
type Set struct {
	Stories    StoryClient
	Categories CategoryClient
	Donations  DonationClient
	Settings   SettingsClient
	Seo        SeoClient
	Uploads    UploadClient
	Auth       AuthClient
	Payments   PaymentClient
}

// NewSet создает все клиенты над общими зависимостями.
func NewSet(deps Deps, loginPath string) *Set {
	return &Set{
		Stories:    NewStoryClient(deps),
		Categories: NewCategoryClient(deps),
		Donations:  NewDonationClient(deps),
		Settings:   NewSettingsClient(deps),
		Seo:        NewSeoClient(deps),
		Uploads:    NewUploadClient(deps),
		Auth:       NewAuthClient(deps, loginPath),
		Payments:   NewPaymentClient(deps),
	}
}

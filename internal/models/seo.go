package models

// SeoOrganization - данные организации для разметки. Сама разметка строится не здесь.
type SeoOrganization struct {
	Name            string  `json:"name"`
	LegalName       *string `json:"legalName,omitempty"`
	URL             string  `json:"url"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	ContactEmail    *string `json:"contactEmail,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	StreetAddress   *string `json:"streetAddress,omitempty"`
	AddressLocality *string `json:"addressLocality,omitempty"`
	AddressRegion   *string `json:"addressRegion,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	AddressCountry  *string `json:"addressCountry,omitempty"`
	SameAsJSON      *string `json:"sameAsJson,omitempty"`
}

// SeoArticle - данные истории для разметки статьи.
type SeoArticle struct {
	CanonicalURL    string   `json:"canonicalUrl"`
	Headline        string   `json:"headline"`
	MetaDescription *string  `json:"metaDescription,omitempty"`
	MetaKeywords    []string `json:"metaKeywords,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	DatePublished   *string  `json:"datePublished,omitempty"`
	DateModified    *string  `json:"dateModified,omitempty"`
	AuthorName      *string  `json:"authorName,omitempty"`
	ArticleSection  *string  `json:"articleSection,omitempty"`
	ArticleTags     []string `json:"articleTags,omitempty"`
	PublisherName   *string  `json:"publisherName,omitempty"`
	PublisherLogo   *string  `json:"publisherLogo,omitempty"`
}

// SeoBreadcrumbItem - один элемент хлебных крошек.
type SeoBreadcrumbItem struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	ItemURL  string `json:"itemUrl"`
}

// SeoBreadcrumbList - хлебные крошки страницы.
type SeoBreadcrumbList struct {
	CanonicalURL string              `json:"canonicalUrl"`
	PageType     *string             `json:"pageType,omitempty"`
	Items        []SeoBreadcrumbItem `json:"items"`
}

// BreadcrumbQuery - параметры запроса хлебных крошек; пустые поля не отправляются.
type BreadcrumbQuery struct {
	PageType     string
	RefID        string
	CanonicalURL string
}

// UploadResponse - ответ на загрузку изображения.
type UploadResponse struct {
	URL string `json:"url"`
}

package models

// SiteSettings - настройки сайта, публичные и административные.
type SiteSettings struct {
	SiteName                  string  `json:"siteName"`
	LogoURL                   *string `json:"logoUrl,omitempty"`
	AdminHiddenLoginPath      string  `json:"adminHiddenLoginPath"`
	CopyProtectionEnabled     bool    `json:"copyProtectionEnabled"`
	ScrapingProtectionEnabled bool    `json:"scrapingProtectionEnabled"`
}

// Logo возвращает URL логотипа или пустую строку.
func (s SiteSettings) Logo() string {
	if s.LogoURL == nil {
		return ""
	}
	return *s.LogoURL
}

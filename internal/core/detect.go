package core

import "strings"

// platformKeywords is checked in order; the first match wins.
var platformKeywords = []struct {
	platform Platform
	keywords []string
}{
	{Shopee, []string{"shopee"}},
	{MercadoLivre, []string{"mercadolivre", "mercado livre"}},
	{TikTok, []string{"tiktok"}},
	{Shein, []string{"shein"}},
}

// DetectPlatform classifies an export by keywords in its filename.
// Files without a known keyword are Unrecognized.
func DetectPlatform(filename string) Platform {
	name := strings.ToLower(filename)
	for _, pk := range platformKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(name, kw) {
				return pk.platform
			}
		}
	}
	return Unrecognized
}

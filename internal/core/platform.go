package core

import (
	"fmt"
	"strings"
)

// Platform identifies the marketplace an export file came from.
type Platform int

const (
	Unrecognized Platform = iota
	Shopee
	MercadoLivre
	TikTok
	Shein
)

// String returns the platform code used in logs and query parameters.
func (p Platform) String() string {
	switch p {
	case Shopee:
		return "shopee"
	case MercadoLivre:
		return "mercadolivre"
	case TikTok:
		return "tiktok"
	case Shein:
		return "shein"
	default:
		return "unrecognized"
	}
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case Shopee:
		return "Shopee"
	case MercadoLivre:
		return "Mercado Livre"
	case TikTok:
		return "TikTok"
	case Shein:
		return "Shein"
	default:
		return "Outro"
	}
}

// IsRecognized reports whether p is one of the supported marketplaces.
func (p Platform) IsRecognized() bool {
	return p >= Shopee && p <= Shein
}

// MarshalText encodes the platform as its display name.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.DisplayName()), nil
}

// UnmarshalText accepts either a display name or a platform code.
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, ok := ParsePlatform(string(text))
	if !ok {
		return fmt.Errorf("unknown platform %q", text)
	}
	*p = parsed
	return nil
}

// ParsePlatform resolves a display name or code, case-insensitively.
func ParsePlatform(s string) (Platform, bool) {
	s = strings.TrimSpace(s)
	for _, p := range []Platform{Unrecognized, Shopee, MercadoLivre, TikTok, Shein} {
		if strings.EqualFold(s, p.String()) || strings.EqualFold(s, p.DisplayName()) {
			return p, true
		}
	}
	return Unrecognized, false
}

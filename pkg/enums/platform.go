package enums

import "fmt"

// Platform enumerates the marketplaces an order can originate from.
type Platform string

const (
	PlatformEbay     Platform = "ebay"
	PlatformEtsy     Platform = "etsy"
	PlatformAmazon   Platform = "amazon"
	PlatformDepop    Platform = "depop"
	PlatformVinted   Platform = "vinted"
	PlatformShopify  Platform = "shopify"
	PlatformFacebook Platform = "facebook"
	PlatformInPerson Platform = "in_person"
	PlatformOther    Platform = "other"
)

var validPlatforms = []Platform{
	PlatformEbay,
	PlatformEtsy,
	PlatformAmazon,
	PlatformDepop,
	PlatformVinted,
	PlatformShopify,
	PlatformFacebook,
	PlatformInPerson,
	PlatformOther,
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// IsValid reports whether the platform is recognized.
func (p Platform) IsValid() bool {
	for _, candidate := range validPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlatform converts a raw string into a Platform.
func ParsePlatform(value string) (Platform, error) {
	for _, candidate := range validPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q", value)
}

// Platforms returns all known platforms in declaration order.
func Platforms() []Platform {
	out := make([]Platform, len(validPlatforms))
	copy(out, validPlatforms)
	return out
}

package enums

import "fmt"

// BannerPosition is the storefront slot a banner renders in.
type BannerPosition string

const (
	BannerPositionHomeTop    BannerPosition = "home-top"
	BannerPositionHomeMiddle BannerPosition = "home-middle"
	BannerPositionSidebar    BannerPosition = "sidebar"
	BannerPositionBottom     BannerPosition = "bottom"
)

var validBannerPositions = []BannerPosition{
	BannerPositionHomeTop,
	BannerPositionHomeMiddle,
	BannerPositionSidebar,
	BannerPositionBottom,
}

// String implements fmt.Stringer.
func (b BannerPosition) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BannerPosition.
func (b BannerPosition) IsValid() bool {
	for _, candidate := range validBannerPositions {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBannerPosition converts raw input into a BannerPosition.
func ParseBannerPosition(value string) (BannerPosition, error) {
	for _, candidate := range validBannerPositions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid banner position %q", value)
}

package coords

import (
	"fmt"
	"net/url"
	"strconv"
)

// Platform selects the deep-link order handed to the external navigator.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// NavigationURLs returns deep links to try in order, ending with a generic
// geo: URI. The label is only carried by the geo: link.
func NavigationURLs(lat, lon float64, label string, platform Platform) []string {
	ll := formatURLFloat(lat) + "," + formatURLFloat(lon)

	google := "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(ll)
	geo := "geo:" + ll
	if label != "" {
		geo += "?q=" + ll + "(" + url.QueryEscape(label) + ")"
	}

	switch platform {
	case PlatformAndroid:
		return []string{"google.navigation:q=" + ll, google, geo}
	default:
		return []string{"maps://?daddr=" + ll, google, geo}
	}
}

// NavigationLabel is the title shown before handing off to a navigator.
func NavigationLabel(name string, lat, lon float64) string {
	if name == "" {
		return FormatDefault(lat, lon)
	}
	return fmt.Sprintf("%s (%s)", name, FormatDefault(lat, lon))
}

func formatURLFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

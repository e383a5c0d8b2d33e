package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationURLs(t *testing.T) {
	t.Run("android prefers the navigation intent", func(t *testing.T) {
		urls := NavigationURLs(55.7449, 37.6046, "", PlatformAndroid)
		assert.Equal(t, []string{
			"google.navigation:q=55.7449,37.6046",
			"https://www.google.com/maps/dir/?api=1&destination=55.7449%2C37.6046",
			"geo:55.7449,37.6046",
		}, urls)
	})

	t.Run("ios prefers apple maps", func(t *testing.T) {
		urls := NavigationURLs(-33.5, 151, "", PlatformIOS)
		assert.Equal(t, "maps://?daddr=-33.5,151", urls[0])
		assert.Len(t, urls, 3)
	})

	t.Run("label goes into the geo link", func(t *testing.T) {
		urls := NavigationURLs(1.5, 2.5, "Red Square", PlatformAndroid)
		assert.Equal(t, "geo:1.5,2.5?q=1.5,2.5(Red+Square)", urls[2])
	})
}

func TestNavigationLabel(t *testing.T) {
	assert.Equal(t, "1.00000, 2.00000", NavigationLabel("", 1, 2))
	assert.Equal(t, "Kremlin (55.75200, 37.61750)", NavigationLabel("Kremlin", 55.752, 37.6175))
}

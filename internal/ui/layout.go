package ui

import "time"

// Fixed rows of the main layout.
const (
	headerRows     = 1 // connection bar
	commandBarRows = 1
	displayRows    = 6 // display box including borders
	tabBarRows     = 1
	chromeRows     = headerRows + commandBarRows + displayRows + tabBarRows
)

// LayoutCompactWidth is the width below which secondary header fields are hidden.
const LayoutCompactWidth = 100

// Timing constants.
const (
	// DefaultUIInterval is the fallback refresh interval. Store changes are
	// also delivered immediately through a subscription.
	DefaultUIInterval = time.Second

	// flashDuration is how long a status line message stays visible.
	flashDuration = 4 * time.Second
)

// appLogLimit bounds how many application log lines the console tail keeps.
const appLogLimit = 500

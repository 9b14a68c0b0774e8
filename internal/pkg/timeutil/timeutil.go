// Package timeutil has small time formatting helpers shared by the
// transcript renderer and the summary context builder.
package timeutil

import (
	"fmt"
	"time"
)

// FormatHMS renders a duration as HH:MM:SS.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

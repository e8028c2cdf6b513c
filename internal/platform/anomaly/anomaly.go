// Package anomaly flags logins originating from an IP or location other
// than the one recorded for the user's previous login. This is a plain
// equality heuristic, not impossible-travel analysis: routine ISP address
// churn will be flagged as abnormal.
package anomaly

import "fmt"

type Assessment struct {
	Abnormal bool
	Reason   string
}

var normal = Assessment{}

// Classify compares the current login attempt against the user's last known
// IP and location. A first login (no prior telemetry) is always normal.
// Location is checked before IP; the first mismatch wins.
func Classify(lastIP, lastLocation, currentIP, currentLocation string) Assessment {
	if lastIP == "" && lastLocation == "" {
		return normal
	}

	if currentLocation != lastLocation {
		return Assessment{
			Abnormal: true,
			Reason:   fmt.Sprintf("login location changed from %q to %q", lastLocation, currentLocation),
		}
	}
	if currentIP != lastIP {
		return Assessment{
			Abnormal: true,
			Reason:   fmt.Sprintf("login IP changed from %s to %s", lastIP, currentIP),
		}
	}

	return normal
}

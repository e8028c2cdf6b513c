package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name            string
		lastIP          string
		lastLocation    string
		currentIP       string
		currentLocation string
		abnormal        bool
		reasonContains  string
	}{
		{
			name:            "first login is normal",
			currentIP:       "1.2.3.4",
			currentLocation: "China Beijing",
			abnormal:        false,
		},
		{
			name:            "identical ip and location is normal",
			lastIP:          "1.2.3.4",
			lastLocation:    "China Beijing",
			currentIP:       "1.2.3.4",
			currentLocation: "China Beijing",
			abnormal:        false,
		},
		{
			name:            "location change is abnormal",
			lastIP:          "1.2.3.4",
			lastLocation:    "China Beijing",
			currentIP:       "1.2.3.4",
			currentLocation: "China Shanghai",
			abnormal:        true,
			reasonContains:  "location",
		},
		{
			name:            "ip change alone is abnormal",
			lastIP:          "1.2.3.4",
			lastLocation:    "China Beijing",
			currentIP:       "5.6.7.8",
			currentLocation: "China Beijing",
			abnormal:        true,
			reasonContains:  "IP",
		},
		{
			name:            "location mismatch wins over ip mismatch",
			lastIP:          "1.2.3.4",
			lastLocation:    "China Beijing",
			currentIP:       "5.6.7.8",
			currentLocation: "China Shanghai",
			abnormal:        true,
			reasonContains:  "location",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assessment := Classify(tc.lastIP, tc.lastLocation, tc.currentIP, tc.currentLocation)

			assert.Equal(t, tc.abnormal, assessment.Abnormal)
			if tc.reasonContains != "" {
				assert.Contains(t, assessment.Reason, tc.reasonContains)
			} else {
				assert.Empty(t, assessment.Reason)
			}
		})
	}
}

// internal/ua/ua.go
//
// User-Agent parsing for the /debug page.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.
package ua

import (
	"fmt"
	"strconv"

	surfer "github.com/avct/uasurfer"
)

// Info carries the UA attributes shown on the debug page.
//
// Example (Chrome on macOS):
//
//	Browser   "BrowserChrome"
//	Version   "125.0.6422"
//	OS        "OSMacOSX"
//	OSVersion "10.15.7"
//	Device    "Desktop"
//	IsBot     false
//
// Device is one of "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser   string `json:"browser"`
	Version   string `json:"version,omitempty"`
	OS        string `json:"os"`
	OSVersion string `json:"os_version,omitempty"`
	Platform  string `json:"platform"`
	Device    string `json:"device"`
	IsBot     bool   `json:"is_bot"`
}

var devices = map[surfer.DeviceType]string{
	surfer.DeviceComputer: "Desktop",
	surfer.DeviceTablet:   "Tablet",
	surfer.DevicePhone:    "Mobile",
	surfer.DeviceWearable: "Mobile",
}

// Parse converts a raw header into an Info struct.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	device, ok := devices[u.DeviceType]
	if !ok {
		device = "Other"
	}
	return Info{
		Browser:   u.Browser.Name.String(),
		Version:   versionString(u.Browser.Version),
		OS:        u.OS.Name.String(),
		OSVersion: versionString(u.OS.Version),
		Platform:  u.OS.Platform.String(),
		Device:    device,
		IsBot:     u.IsBot(),
	}
}

// versionString renders a version in dotted form while trimming trailing
// zeros: 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionString(v surfer.Version) string {
	switch {
	case v.Major == 0 && v.Minor == 0 && v.Patch == 0:
		return ""
	case v.Patch != 0:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	case v.Minor != 0:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}

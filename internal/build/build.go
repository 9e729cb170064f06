// Package build holds values set with -ldflags at release time.
package build

import "time"

var (
	commit  = ""
	date    = ""
	version = "dev"
)

func init() {
	date, _ := time.Parse(time.RFC3339, date)

	Current = Build{
		Commit:  commit,
		Version: version,
		Date:    date,
	}
}

var Current Build

type Build struct {
	Commit  string    `json:"commit,omitempty"`
	Version string    `json:"version,omitempty"`
	Date    time.Time `json:"date,omitempty"`
}

// Name is the default status text, e.g. "xtagwm-1.0".
func (b Build) Name() string {
	return "xtagwm-" + b.Version
}

func (b Build) String() string {
	if b.Commit == "" {
		return b.Version
	}
	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return b.Version + " (" + short + ")"
}

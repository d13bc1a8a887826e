package version

// Set at build time with -ldflags "-X netmonitor/pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, BuildDate: BuildDate}
}

package domain

import "time"

// Settings holds the tool configuration that is not part of a mod list.
type Settings struct {
	// DownloadDir is where mod files are stored.
	DownloadDir string `mapstructure:"download_dir" default:"mods"`
	// Timeout bounds every HTTP request, body included.
	Timeout time.Duration `mapstructure:"timeout" default:"5m"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"modlock"`
	// Jobs is the number of references processed at once.
	Jobs int `mapstructure:"jobs" default:"1"`
	// Output selects the progress display: auto, bar or linear.
	Output string `mapstructure:"output" default:"auto"`
}

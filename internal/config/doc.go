// Package config provides configuration management for soundcloud-digger.
//
// This package handles:
//   - Loading settings from a YAML or JSON file with viper
//   - Environment overrides prefixed with DIGGER_
//   - Validation of the loaded values
//   - Conversion to dig.Options and http.Client options
//
// # Default Settings
//
// Use DefaultSettings() to get the defaults of the command line tool:
//
//	settings := config.DefaultSettings()
//	// 0.5s between tracks, 20s fetch timeout
//	// 5 retries with 0.5s exponential backoff
//	// JSON export to soundcloud_links.json
//
// # Loading from File
//
//	settings, err := config.Load("")
//	if err != nil {
//	    // A malformed file or an invalid value
//	}
//
// With an empty path, .soundcloud-digger.yaml or .soundcloud-digger.json is
// searched for in the working directory and in ~/.config/soundcloud-digger.
// Every key can be overridden from the environment:
//
//	DIGGER_MAX_TRACKS=20 DIGGER_RENDER=browser soundcloud-digger dig playlist.html
//
// # Saving Settings
//
//	settings.ExportFormat = "yaml"
//	err := settings.Save(".soundcloud-digger.yaml")
package config

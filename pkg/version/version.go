package version

// Version is the application version, overridable at build time via
// -ldflags "-X reelatlas/pkg/version.Version=...".
var Version = "1.0.0"

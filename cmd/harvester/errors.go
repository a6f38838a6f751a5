package main

import "errors"

// errDriveNotConfigured is returned when a command targets a Drive
// folder but no Drive credentials were configured.
var errDriveNotConfigured = errors.New("Google Drive source is not configured")

/*
NAME
  log.go

DESCRIPTION
  log.go declares the package's ambient logger. Callers that want logging
  assign a logging.Logger implementation to Log before using the package;
  the zero value is a nil interface and is never dereferenced by this
  package unless a caller has set it.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoi

import "github.com/ausocean/utils/logging"

// Log is the package's structured logger. Unset (nil) by default; assign a
// logging.Logger before calling into the package to enable logging.
var Log logging.Logger

// logDebug calls Log.Debug if Log has been set, and is a no-op otherwise, so
// that this library does not force every caller to configure a logger.
func logDebug(msg string, args ...interface{}) {
	if Log != nil {
		Log.Debug(msg, args...)
	}
}

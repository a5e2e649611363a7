// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package wclog wires the engine's diagnostic output through logrus, the
// same package-level logger the rest of the corpus uses directly rather
// than threading a logger value through every call.
package wclog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Configure sets the global logrus level and output format. verbose turns
// on debug-level output; json switches to structured JSON lines for
// machine consumption (e.g. when the CLI is invoked from a script).
func Configure(verbose, json bool) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// StepTimer logs how long a named step took, in the style of a defer'd
// timing probe wrapped around a resolver run or a remote round trip.
//
//	defer wclog.StepTimer("resolve-tree-conflict")()
func StepTimer(step string) func() {
	start := time.Now()
	return func() {
		logrus.Debugf("%s: %v", step, time.Since(start))
	}
}

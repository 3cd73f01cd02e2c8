// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the handlers carry
// neither an HTTP router nor a gRPC handler.
var errNoServersAreCreated = errors.New("no servers are created")

// Package cluster wraps the Ray CLI for starting nodes and querying status.
package cluster

import (
	"context"
	"strings"
)

// DefaultDashboardHost is the interface the head node's dashboard binds to
// when the caller does not override it.
const DefaultDashboardHost = "0.0.0.0"

// ValidationError signals a bad flag combination, before any subprocess runs.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// IsValidation reports whether err is a user-input validation failure.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

var (
	errRoleRequired    = &ValidationError{msg: "specify exactly one of --head or --worker"}
	errAddressRequired = &ValidationError{msg: "--address is required when starting a worker node"}
)

// Runner invokes the Ray CLI with the given arguments.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// StartOptions selects the node role for `ray start`.
type StartOptions struct {
	Head          bool
	Worker        bool // mutually exclusive with Head
	Address       string
	DashboardHost string
}

// Start brings up a Ray head or worker node. Exactly one of Head/Worker must
// be set; a worker additionally needs the head address to join.
func Start(ctx context.Context, ray Runner, opts StartOptions) error {
	if opts.Head == opts.Worker {
		return errRoleRequired
	}

	if opts.Head {
		host := opts.DashboardHost
		if host == "" {
			host = DefaultDashboardHost
		}
		return ray.Run(ctx, "start", "--head", "--dashboard-host="+host)
	}

	if opts.Address == "" {
		return errAddressRequired
	}
	// Shells and YAML tend to leave quotes around host:port values.
	sanitized := strings.Trim(opts.Address, `'"`)
	return ray.Run(ctx, "start", "--address="+sanitized)
}

// Status prints the current cluster status.
func Status(ctx context.Context, ray Runner) error {
	return ray.Run(ctx, "status")
}

package dispatch

import (
	"strings"

	"s3-iam-cli/internal/config"
)

// Resolution is where an action is routed to.
type Resolution struct {
	Action  string // lowercased action name
	Service string
	Module  string
	Class   string
	Method  string
}

// Resolve looks the action up in the mapping. The module defaults to the
// lowercased controller name when the entry does not name one.
func Resolve(action string, actions config.ActionMapping) (*Resolution, error) {
	key := strings.ToLower(action)
	entry, ok := actions.Lookup(action)
	if !ok || entry.Controller == "" {
		return nil, fail(ErrActionNotFound, nil, "Action not found: %s", action)
	}
	if entry.Service == "" {
		return nil, fail(ErrMissingService, nil, "Set the service(iam/s3/sts) for the action in the %s.", config.ActionsFile)
	}
	if entry.Action == "" {
		return nil, fail(ErrMissingMethod, nil, "Set the action for %s in the %s.", key, config.ActionsFile)
	}

	module := entry.Module
	if module == "" {
		module = strings.ToLower(entry.Controller)
	}
	return &Resolution{
		Action:  key,
		Service: entry.Service,
		Module:  module,
		Class:   entry.Controller,
		Method:  entry.Action,
	}, nil
}

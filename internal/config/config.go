// internal/config/config.go
package config

import "strings"

// ActionEntry is one row of controller_action.yaml.
type ActionEntry struct {
	Service    string `yaml:"service"`
	Controller string `yaml:"controller"`
	Module     string `yaml:"module"`
	Action     string `yaml:"action"`
}

// ActionMapping maps a lowercase action name to the controller implementing it.
type ActionMapping map[string]ActionEntry

// Lookup finds the entry for action, ignoring case.
func (m ActionMapping) Lookup(action string) (ActionEntry, bool) {
	entry, ok := m[strings.ToLower(action)]
	return entry, ok
}

// EndpointMapping maps a service name (iam, s3, sts) to its endpoint.
type EndpointMapping map[string]Endpoint

// URL returns the endpoint URL for service, or false when none is set.
func (m EndpointMapping) URL(service string) (string, bool) {
	ep, ok := m[service]
	if !ok {
		return "", false
	}
	url := ep.Get()
	return url, url != ""
}

// Files is the content of the config directory.
type Files struct {
	Endpoints EndpointMapping
	Actions   ActionMapping
}

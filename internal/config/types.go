// internal/config/types.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Endpoint is a service URL given either inline or through an environment
// variable:
//
//	iam: http://localhost:9080
//	s3:
//	  data: http://localhost:8000
//	  env_var: S3_ENDPOINT
type Endpoint struct {
	Data   string `yaml:"data"`
	EnvVar string `yaml:"env_var"`
}

func (e Endpoint) Get() string {
	if e.Data != "" {
		return e.Data
	}
	if e.EnvVar != "" {
		return os.Getenv(e.EnvVar)
	}
	return ""
}

// UnmarshalYAML accepts a plain scalar as shorthand for {data: <scalar>}.
func (e *Endpoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Data = node.Value
		return nil
	case yaml.MappingNode:
		type plain Endpoint
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*e = Endpoint(p)
		return nil
	default:
		return fmt.Errorf("line %d: endpoint must be a URL or a {data, env_var} mapping", node.Line)
	}
}

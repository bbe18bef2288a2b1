package controller

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// errEmptyResponse is returned when a create call succeeds but the reply
// does not carry the created entity.
var errEmptyResponse = errors.New("empty response from server")

// field is one "Key = value" pair of a printed record.
type field struct {
	key   string
	value string
}

func kv(key, value string) field { return field{key: key, value: value} }

func kvp(key string, value *string) field { return field{key: key, value: aws.ToString(value)} }

func kvTime(key string, value *time.Time) field {
	if value == nil {
		return field{key: key}
	}
	return field{key: key, value: value.UTC().Format(time.RFC3339)}
}

// printRecord writes fields as a single comma separated line.
func printRecord(out io.Writer, fields ...field) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.key+" = "+f.value)
	}
	fmt.Fprintln(out, strings.Join(parts, ", "))
}

// readDocument returns the contents of a file named by a flag, failing
// with what when the flag was not given.
func readDocument(path, what string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(b), nil
}

// optionalDocument is readDocument for flags that may be omitted.
func optionalDocument(path string) (*string, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := readDocument(path, "")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

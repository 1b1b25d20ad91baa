package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mattn/go-shellwords"
)

// splitDropLine splits an input line into words. Terminals quote or
// backslash-escape a dragged path that contains spaces, so shell quoting rules
// apply.
func splitDropLine(line string) ([]string, error) {
	fields, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse drop line: %w", err)
	}
	return fields, nil
}

// dropPath turns a pasted file:// URI into a path; other values pass through.
func dropPath(value string) string {
	if !strings.HasPrefix(value, "file://") {
		return value
	}
	u, err := url.Parse(value)
	if err != nil || u.Path == "" {
		return value
	}
	return u.Path
}

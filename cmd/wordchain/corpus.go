package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// readSources returns the contents of every file, in the given order.
func readSources(paths []string) ([]string, error) {
	sources := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}
		sources = append(sources, string(data))
	}
	return sources, nil
}

// writeOutput writes one sentence per line, replacing path atomically.
func writeOutput(path string, sentences []string) error {
	var sb strings.Builder
	for _, sentence := range sentences {
		sb.WriteString(sentence)
		sb.WriteByte('\n')
	}
	if err := atomic.WriteFile(path, strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// splitRequired splits a -r value on commas and spaces.
func splitRequired(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

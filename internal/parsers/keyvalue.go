package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/config-forge/internal/proxy"
)

// keyvalueParser handles line-delimited payloads where each line is one
// record of semicolon-separated key=value pairs:
//
//	host=1.2.3.4;port=443
//
// Blank lines and '#' comments are ignored. A malformed line is skipped
// with a warning; the remaining lines still parse.
type keyvalueParser struct{}

func init() {
	mustRegister(keyvalueParser{}, 30)
}

func (keyvalueParser) Name() string { return "keyvalue" }

func (keyvalueParser) Detect(data []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	sawRecord := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "=") {
			return false
		}
		sawRecord = true
	}

	return sawRecord
}

func (keyvalueParser) Parse(data []byte) ([]proxy.Record, []error) {
	var records []proxy.Record
	var warnings []error

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record, err := parseLine(line)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("skipping line %d: %w", lineNo, err))
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		warnings = append(warnings, fmt.Errorf("stopped reading payload: %w", err))
	}

	return records, warnings
}

func parseLine(line string) (proxy.Record, error) {
	record := make(proxy.Record)

	for _, pair := range strings.Split(line, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in pair %q", pair)
		}

		record[key] = coerceValue(strings.TrimSpace(value))
	}

	if len(record) == 0 {
		return nil, fmt.Errorf("no pairs on line")
	}

	return record, nil
}

// coerceValue converts numeric and boolean literals to their typed form so
// key=value records compare equal to the same entry from a JSON or YAML
// source.
func coerceValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

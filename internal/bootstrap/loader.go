package bootstrap

import (
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// yamlListItem matches a trimmed line of the shape `- "ENTRY"` with
// nothing after the closing quote — the one YAML shape the bootstrap
// file format supports (spec §6: "No nesting, no escaping").
var yamlListItem = regexp.MustCompile(`^-\s*"([^"]*)"\s*$`)

// LoaderConfig bundles the loader's two sources: an optional file path
// and the repeatable CLI bootstrap list.
type LoaderConfig struct {
	FilePath string
	CLI      []string
}

// Load reads LoaderConfig.FilePath (if set) and appends LoaderConfig.CLI,
// classifying every non-empty line/entry into an Address. Parse failures
// are collected as warnings and never abort the load; the caller decides
// whether an empty result is fatal (spec §4.A).
func Load(conf LoaderConfig, log logrus.FieldLogger) ([]Address, []error) {
	var candidates []string
	if conf.FilePath != "" {
		lines, err := readLines(conf.FilePath)
		if err != nil {
			log.WithError(err).Warn("could not read bootstrap file")
		} else {
			candidates = append(candidates, lines...)
		}
	}
	candidates = append(candidates, conf.CLI...)

	var (
		addrs []Address
		errs  []error
	)
	for _, raw := range candidates {
		line := unpackYAMLLine(strings.TrimSpace(raw))
		if line == "" {
			continue
		}
		addr, err := Classify(line)
		if err != nil {
			log.WithError(err).WithField("entry", line).Warn("skipping unparsable bootstrap entry")
			errs = append(errs, err)
			continue
		}
		addrs = append(addrs, addr)
	}
	return addrs, errs
}

// unpackYAMLLine substitutes the inner quoted token of a `- "X"` line for
// X; every other line (including already-bare entries) passes through
// unchanged. This is the "YAML-list-item unwrap" rule from spec §4.A.
func unpackYAMLLine(trimmed string) string {
	if m := yamlListItem.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// readLines splits file content on CRLF or LF, per spec §6's bootstrap
// file format.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(normalized, "\n"), nil
}

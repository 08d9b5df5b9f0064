package migration

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var changeSetFile = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

// LoadChangeSets reads the published change-sets of fsys. Each file is named
// <version>_<description>.sql and holds statements terminated by a semicolon
// at the end of a line. Lines starting with "--" are comments.
func LoadChangeSets(fsys fs.FS) ([]*ChangeSet, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read change-sets: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	out := make([]*ChangeSet, 0, len(names))
	for _, name := range names {
		m := changeSetFile.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("change-set file %s: expected <version>_<description>.sql", name)
		}
		version, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("change-set file %s: %w", name, err)
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read change-set %s: %w", name, err)
		}
		out = append(out, &ChangeSet{
			Version:     version,
			Description: m[2],
			Statements:  SplitStatements(string(content)),
		})
	}
	return out, nil
}

// SplitStatements breaks a script into trimmed statements
func SplitStatements(script string) []string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";\n") {
		if stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";")); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/glowcouch/storage-noodle/dialect"
)

// validIdentifierRe matches the unquoted identifiers tables and columns are
// created with.
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 64 && validIdentifierRe.MatchString(s)
}

// ValidationError represents a table validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of table validation.
type ValidationResult struct {
	Errors []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the validation errors joined, or nil if there are none.
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	if !r.HasErrors() {
		return "No issues found"
	}
	var sb strings.Builder
	sb.WriteString("Errors:\n")
	for _, e := range r.Errors {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *ValidationResult) add(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{
		Table:   table,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

// ValidateTable checks that t can be created and bound by the generated
// CRUD statements:
//
//   - table and column names are unquoted SQL identifiers and are not
//     reserved words of the given dialects, or of every supported dialect
//     if none is given
//   - column names are unique, ignoring case
//   - every column has a known type
//   - there is exactly one primary key, named Id, and it is the last column
//   - only integer primary keys auto increment
func ValidateTable(t Table, dialects ...string) *ValidationResult {
	if len(dialects) == 0 {
		dialects = dialect.Names
	}
	result := &ValidationResult{}
	if !isValidIdentifier(t.Name) {
		result.add(t.Name, "", "invalid table name %q", t.Name)
	} else if in := reservedIn(t.Name, dialects); len(in) > 0 {
		result.add(t.Name, "", "table name %q is reserved in %s", t.Name, strings.Join(in, ", "))
	}
	var (
		pks  int
		seen = make(map[string]struct{}, len(t.Columns))
	)
	for i, c := range t.Columns {
		if !isValidIdentifier(c.Name) {
			result.add(t.Name, c.Name, "invalid column name %q", c.Name)
		} else if in := reservedIn(c.Name, dialects); len(in) > 0 {
			result.add(t.Name, c.Name, "column name %q is reserved in %s", c.Name, strings.Join(in, ", "))
		}
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok {
			result.add(t.Name, c.Name, "duplicate column name")
		}
		seen[key] = struct{}{}
		if !c.Type.Valid() {
			result.add(t.Name, c.Name, "invalid column type %d", c.Type)
		}
		switch c.Kind {
		case PrimaryKey:
			pks++
			if i != len(t.Columns)-1 {
				result.add(t.Name, c.Name, "primary key must be the last column")
			}
			if c.Name != IDColumn {
				result.add(t.Name, c.Name, "primary key must be named %s", IDColumn)
			}
			if c.AutoIncrement && !c.Type.Integer() {
				result.add(t.Name, c.Name, "auto increment requires an integer type, got %s", c.Type)
			}
		case Data:
			if c.AutoIncrement {
				result.add(t.Name, c.Name, "only the primary key can auto increment")
			}
		default:
			result.add(t.Name, c.Name, "unknown column kind %d", c.Kind)
		}
	}
	if pks != 1 {
		result.add(t.Name, "", "table must have exactly one primary key, got %d", pks)
	}
	return result
}

// Validate is like ValidateTable but returns the errors as a single error.
func Validate(t Table, dialects ...string) error {
	return ValidateTable(t, dialects...).Err()
}

func reservedIn(ident string, dialects []string) []string {
	var in []string
	for _, d := range dialects {
		if dialect.Reserved(d, ident) {
			in = append(in, d)
		}
	}
	return in
}

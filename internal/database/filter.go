package database

import (
	"fmt"
	"strings"
)

// Filter accumulates WHERE conditions and their positional arguments.
// Conditions use "?" as a placeholder; they are renumbered to $n as they are added.
type Filter struct {
	conds []string
	args  []any
}

// Where adds cond, replacing each "?" with the next positional argument.
func (f *Filter) Where(cond string, args ...any) *Filter {
	var sb strings.Builder

	next := 0

	for _, r := range cond {
		if r != '?' || next >= len(args) {
			sb.WriteRune(r)
			continue
		}

		f.args = append(f.args, args[next])
		fmt.Fprintf(&sb, "$%d", len(f.args))
		next++
	}

	f.conds = append(f.conds, sb.String())

	return f
}

// Arg appends a value that is referenced explicitly and returns its placeholder.
func (f *Filter) Arg(v any) string {
	f.args = append(f.args, v)
	return fmt.Sprintf("$%d", len(f.args))
}

// Clause renders " WHERE a AND b", or an empty string when no condition was added.
func (f *Filter) Clause() string {
	if len(f.conds) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(f.conds, " AND ")
}

func (f *Filter) Args() []any {
	return f.args
}

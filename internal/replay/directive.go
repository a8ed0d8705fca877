package replay

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrBadDirective marks a compact-format line that does not match the
// directive grammar.
var ErrBadDirective = errors.New("malformed replay directive")

// directiveLexer tokenizes one compact-format line. Arguments are free text
// up to the next delimiter, so card names may contain spaces.
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `\s*;[^\n]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Arg", Pattern: `[^(),;\n]+`},
})

// directiveLine is one parsed line: name(arg0,arg1,...) with an optional
// trailing comment.
type directiveLine struct {
	Name    string   `parser:"@Arg"`
	Args    []string `parser:"'(' ( @Arg ( ',' @Arg )* )? ')'"`
	Comment string   `parser:"@Comment?"`
}

var directiveParser = participle.MustBuild[directiveLine](
	participle.Lexer(directiveLexer),
)

var directiveName = regexp.MustCompile(`^\w+$`)

// parseDirective splits one compact-format line into its directive name and
// trimmed arguments.
func parseDirective(line string) (string, []string, error) {
	d, err := directiveParser.ParseString("", line)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q", ErrBadDirective, line)
	}
	name := strings.TrimSpace(d.Name)
	if !directiveName.MatchString(name) {
		return "", nil, fmt.Errorf("%w: %q", ErrBadDirective, line)
	}
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = strings.TrimSpace(a)
	}
	return name, args, nil
}

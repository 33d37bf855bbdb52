package xpath

import (
	"math"
	"strings"

	"github.com/go-xmldom/xmldom"
)

// builtinFunc evaluates a core function call against ctx. It receives
// the argument expressions unevaluated and evaluates the ones it needs
// itself. Argument count has already been checked against the table
// entry's arity before a builtinFunc is invoked.
type builtinFunc func(ctx *Context, args []expr) (Object, error)

type arity struct {
	min, max int // max == -1 means unbounded
}

type builtin struct {
	arity arity
	fn    builtinFunc
}

// coreFunctions is the table of every core function spec.md §4.I
// names that is actually reachable through the lexer's classification
// rule: a bare name followed by "(" is read as a NodeType token, not
// a FunctionName token, whenever it matches one of the four node-type
// test keywords, so "comment()" always parses as a NodeTest, never a
// function call. See DESIGN.md for this deviation from the spec's
// literal function list.
var coreFunctions map[string]builtin

func init() {
	coreFunctions = map[string]builtin{
		"last":                    {arity{0, 0}, fnLast},
		"position":                {arity{0, 0}, fnPosition},
		"count":                   {arity{1, 1}, fnCount},
		"id":                      {arity{1, 1}, fnID},
		"local-name":              {arity{0, 1}, fnLocalName},
		"namespace-uri":           {arity{0, 1}, fnNamespaceURI},
		"name":                    {arity{0, 1}, fnName},
		"string":                  {arity{0, 1}, fnString},
		"concat":                  {arity{2, -1}, fnConcat},
		"starts-with":             {arity{2, 2}, fnStartsWith},
		"contains":                {arity{2, 2}, fnContains},
		"substring-before":        {arity{2, 2}, fnSubstringBefore},
		"substring-after":         {arity{2, 2}, fnSubstringAfter},
		"substring":               {arity{2, 3}, fnSubstring},
		"string-length":           {arity{0, 1}, fnStringLength},
		"normalize-space":         {arity{0, 1}, fnNormalizeSpace},
		"translate":               {arity{3, 3}, fnTranslate},
		"boolean":                 {arity{1, 1}, fnBoolean},
		"not":                     {arity{1, 1}, fnNot},
		"true":                    {arity{0, 0}, fnTrue},
		"false":                   {arity{0, 0}, fnFalse},
		"lang":                    {arity{1, 1}, fnLang},
		"number":                  {arity{0, 1}, fnNumber},
		"sum":                     {arity{1, 1}, fnSum},
		"floor":                   {arity{1, 1}, fnFloor},
		"ceiling":                 {arity{1, 1}, fnCeiling},
		"round":                   {arity{1, 1}, fnRound},
	}
}

func fnLast(ctx *Context, args []expr) (Object, error) { return NumberObject(float64(ctx.Last())), nil }

func fnPosition(ctx *Context, args []expr) (Object, error) {
	return NumberObject(float64(ctx.Position())), nil
}

func fnCount(ctx *Context, args []expr) (Object, error) {
	arg, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	if arg.Kind != NodeSetKind {
		return Object{}, errXPathSyntax("count() requires a node-set argument")
	}
	return NumberObject(float64(len(arg.Nodes))), nil
}

func fnID(ctx *Context, args []expr) (Object, error) {
	arg, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	var tokens []string
	if arg.Kind == NodeSetKind {
		for _, n := range arg.Nodes {
			tokens = append(tokens, strings.Fields(stringValue(n))...)
		}
	} else {
		tokens = strings.Fields(arg.ToString())
	}
	root := docRoot(ctx.Node)
	var out []*xmldom.Node
	seen := make(map[string]bool)
	for _, t := range tokens {
		seen[t] = true
	}
	var walk func(*xmldom.Node)
	walk = func(x *xmldom.Node) {
		if x.Kind == xmldom.ElementNode {
			for i := 0; i < x.Attributes().Len(); i++ {
				a := x.Attributes().At(i)
				if a.IsID && seen[a.Data] {
					out = append(out, x)
					break
				}
			}
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return NodeSet(sortDocumentOrderUnique(out)), nil
}

func contextOrFirstArgNode(ctx *Context, args []expr) (*xmldom.Node, error) {
	if len(args) == 0 {
		return ctx.Node, nil
	}
	arg, err := args[0].eval(ctx)
	if err != nil {
		return nil, err
	}
	if arg.Kind != NodeSetKind || len(arg.Nodes) == 0 {
		return nil, nil
	}
	return arg.Nodes[0], nil
}

func fnLocalName(ctx *Context, args []expr) (Object, error) {
	n, err := contextOrFirstArgNode(ctx, args)
	if err != nil || n == nil {
		return StringObject(""), err
	}
	return StringObject(n.LocalName()), nil
}

func fnNamespaceURI(ctx *Context, args []expr) (Object, error) {
	n, err := contextOrFirstArgNode(ctx, args)
	if err != nil || n == nil {
		return StringObject(""), err
	}
	return StringObject(n.NamespaceURI()), nil
}

func fnName(ctx *Context, args []expr) (Object, error) {
	n, err := contextOrFirstArgNode(ctx, args)
	if err != nil || n == nil {
		return StringObject(""), err
	}
	return StringObject(n.Name()), nil
}

func fnString(ctx *Context, args []expr) (Object, error) {
	if len(args) == 0 {
		return StringObject(stringValue(ctx.Node)), nil
	}
	arg, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return StringObject(arg.ToString()), nil
}

func fnConcat(ctx *Context, args []expr) (Object, error) {
	var b strings.Builder
	for _, a := range args {
		v, err := a.eval(ctx)
		if err != nil {
			return Object{}, err
		}
		b.WriteString(v.ToString())
	}
	return StringObject(b.String()), nil
}

func evalStrings(ctx *Context, args []expr) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		v, err := a.eval(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v.ToString()
	}
	return out, nil
}

func fnStartsWith(ctx *Context, args []expr) (Object, error) {
	s, err := evalStrings(ctx, args)
	if err != nil {
		return Object{}, err
	}
	return BoolObject(strings.HasPrefix(s[0], s[1])), nil
}

func fnContains(ctx *Context, args []expr) (Object, error) {
	s, err := evalStrings(ctx, args)
	if err != nil {
		return Object{}, err
	}
	return BoolObject(strings.Contains(s[0], s[1])), nil
}

func fnSubstringBefore(ctx *Context, args []expr) (Object, error) {
	s, err := evalStrings(ctx, args)
	if err != nil {
		return Object{}, err
	}
	if i := strings.Index(s[0], s[1]); i >= 0 {
		return StringObject(s[0][:i]), nil
	}
	return StringObject(""), nil
}

func fnSubstringAfter(ctx *Context, args []expr) (Object, error) {
	s, err := evalStrings(ctx, args)
	if err != nil {
		return Object{}, err
	}
	if i := strings.Index(s[0], s[1]); i >= 0 {
		return StringObject(s[0][i+len(s[1]):]), nil
	}
	return StringObject(""), nil
}

// fnSubstring implements XPath 1.0's notoriously rounding-based
// substring(): both the start and length arguments are rounded to the
// nearest integer, and either may fall outside the string's bounds.
func fnSubstring(ctx *Context, args []expr) (Object, error) {
	strArg, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	startArg, err := args[1].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	s := []rune(strArg.ToString())
	start := xpathRound(startArg.ToNumber())

	length := math.Inf(1)
	if len(args) == 3 {
		lenArg, err := args[2].eval(ctx)
		if err != nil {
			return Object{}, err
		}
		length = xpathRound(lenArg.ToNumber())
	}
	if math.IsNaN(start) || math.IsNaN(length) {
		return StringObject(""), nil
	}

	from := start
	to := start + length
	if from < 1 {
		from = 1
	}
	if to > float64(len(s)+1) {
		to = float64(len(s) + 1)
	}
	if to <= from {
		return StringObject(""), nil
	}
	return StringObject(string(s[int(from)-1 : int(to)-1])), nil
}

func fnStringLength(ctx *Context, args []expr) (Object, error) {
	n, err := fnString(ctx, args)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(float64(len([]rune(n.Str)))), nil
}

func fnNormalizeSpace(ctx *Context, args []expr) (Object, error) {
	n, err := fnString(ctx, args)
	if err != nil {
		return Object{}, err
	}
	return StringObject(strings.Join(strings.Fields(n.Str), " ")), nil
}

func fnTranslate(ctx *Context, args []expr) (Object, error) {
	s, err := evalStrings(ctx, args)
	if err != nil {
		return Object{}, err
	}
	from, to := []rune(s[1]), []rune(s[2])
	var b strings.Builder
	for _, r := range s[0] {
		idx := -1
		for i, f := range from {
			if f == r {
				idx = i
				break
			}
		}
		switch {
		case idx < 0:
			b.WriteRune(r)
		case idx < len(to):
			b.WriteRune(to[idx])
		}
	}
	return StringObject(b.String()), nil
}

func fnBoolean(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return BoolObject(v.ToBool()), nil
}

func fnNot(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return BoolObject(!v.ToBool()), nil
}

func fnTrue(ctx *Context, args []expr) (Object, error)  { return BoolObject(true), nil }
func fnFalse(ctx *Context, args []expr) (Object, error) { return BoolObject(false), nil }

// fnLang reports whether the context node's nearest xml:lang
// ancestor-or-self attribute names the given language, or a
// sub-language of it (e.g. lang("en") matches xml:lang="en-US").
func fnLang(ctx *Context, args []expr) (Object, error) {
	arg, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	want := strings.ToLower(arg.ToString())
	for n := ctx.Node; n != nil; n = n.Parent {
		if n.Kind != xmldom.ElementNode {
			continue
		}
		if v, ok := n.Attributes().Get("xml:lang"); ok {
			got := strings.ToLower(v)
			if got == want || strings.HasPrefix(got, want+"-") {
				return BoolObject(true), nil
			}
			return BoolObject(false), nil
		}
	}
	return BoolObject(false), nil
}

func fnNumber(ctx *Context, args []expr) (Object, error) {
	if len(args) == 0 {
		return NumberObject(StringObject(stringValue(ctx.Node)).ToNumber()), nil
	}
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(v.ToNumber()), nil
}

func fnSum(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	if v.Kind != NodeSetKind {
		return Object{}, errXPathSyntax("sum() requires a node-set argument")
	}
	total := 0.0
	for _, n := range v.Nodes {
		total += StringObject(stringValue(n)).ToNumber()
	}
	return NumberObject(total), nil
}

func fnFloor(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(math.Floor(v.ToNumber())), nil
}

func fnCeiling(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(math.Ceil(v.ToNumber())), nil
}

func fnRound(ctx *Context, args []expr) (Object, error) {
	v, err := args[0].eval(ctx)
	if err != nil {
		return Object{}, err
	}
	return NumberObject(xpathRound(v.ToNumber())), nil
}

// xpathRound implements XPath 1.0's round(): round half toward
// positive infinity, distinct from Go's math.Round (half away from
// zero).
func xpathRound(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Floor(f + 0.5)
}

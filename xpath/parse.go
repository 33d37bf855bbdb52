package xpath

import "strings"

// parseState is a recursive-descent parser over a token stream already
// produced by lex(expand(src)), implementing the grammar of spec.md
// §4.H from OrExpr down through Step/NodeTest/Predicate.
type parseState struct {
	toks []token
	pos  int
}

// parse compiles a full XPath expression: preprocessing, lexing, and
// recursive-descent parsing, requiring every token to be consumed.
func parse(src string) (expr, error) {
	toks, err := lex(expand(src))
	if err != nil {
		return nil, err
	}
	p := &parseState{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, errXPathSyntax("unexpected trailing input at %v", p.cur())
	}
	return e, nil
}

func (p *parseState) cur() token { return p.toks[p.pos] }

func (p *parseState) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parseState) expect(k tokKind) (token, error) {
	if p.cur().kind != k {
		return token{}, errXPathSyntax("expected %v, got %v", k, p.cur())
	}
	return p.advance(), nil
}

func (p *parseState) isKeyword(word string) bool {
	return p.cur().kind == tokOperatorKeyword && p.cur().text == word
}

func (p *parseState) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: opOr, left: left, right: right}
	}
	return left, nil
}

func (p *parseState) parseAnd() (expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: opAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parseState) parseEquality() (expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var kind binOpKind
		switch p.cur().kind {
		case tokEq:
			kind = opEq
		case tokNe:
			kind = opNe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: kind, left: left, right: right}
	}
}

func (p *parseState) parseRelational() (expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var kind binOpKind
		switch p.cur().kind {
		case tokLt:
			kind = opLt
		case tokLe:
			kind = opLe
		case tokGt:
			kind = opGt
		case tokGe:
			kind = opGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: kind, left: left, right: right}
	}
}

func (p *parseState) parseAdditive() (expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var kind binOpKind
		switch p.cur().kind {
		case tokPlus:
			kind = opAdd
		case tokMinus:
			kind = opSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: kind, left: left, right: right}
	}
}

func (p *parseState) parseMultiplicative() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var kind binOpKind
		switch {
		case p.cur().kind == tokStar:
			kind = opMul
		case p.isKeyword("div"):
			kind = opDiv
		case p.isKeyword("mod"):
			kind = opMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: kind, left: left, right: right}
	}
}

func (p *parseState) parseUnary() (expr, error) {
	if p.cur().kind == tokMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryMinus{operand: operand}, nil
	}
	return p.parseUnion()
}

func (p *parseState) parseUnion() (expr, error) {
	left, err := p.parsePathExpr()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokPipe {
		p.advance()
		right, err := p.parsePathExpr()
		if err != nil {
			return nil, err
		}
		left = binOp{kind: opUnion, left: left, right: right}
	}
	return left, nil
}

// atStepStart reports whether the current token can begin a Step,
// distinguishing a LocationPath from a FilterExpr at the top of
// parsePathExpr.
func (p *parseState) atStepStart() bool {
	switch p.cur().kind {
	case tokAxisSpec, tokNodeType, tokStar, tokName:
		return true
	default:
		return false
	}
}

func (p *parseState) parsePathExpr() (expr, error) {
	if p.cur().kind == tokSlash {
		p.advance()
		lp := &locationPath{absolute: true}
		if p.atStepStart() {
			steps, err := p.parseSteps()
			if err != nil {
				return nil, err
			}
			lp.steps = steps
		}
		return lp, nil
	}

	if p.atStepStart() {
		steps, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		return &locationPath{steps: steps}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	var preds []expr
	for p.cur().kind == tokLBracket {
		pr, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, pr)
	}
	if len(preds) > 0 {
		primary = &filterExpr{base: primary, predicates: preds}
	}
	if p.cur().kind == tokSlash {
		p.advance()
		steps, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		return &locationPath{base: primary, steps: steps}, nil
	}
	return primary, nil
}

func (p *parseState) parseSteps() ([]step, error) {
	var steps []step
	st, err := p.parseStep()
	if err != nil {
		return nil, err
	}
	steps = append(steps, st)
	for p.cur().kind == tokSlash {
		p.advance()
		st, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func (p *parseState) parseStep() (step, error) {
	ax := axisChild
	if p.cur().kind == tokAxisSpec {
		name := p.cur().text
		p.advance()
		if _, err := p.expect(tokColonColon); err != nil {
			return step{}, err
		}
		a, ok := axisByName[name]
		if !ok {
			return step{}, errXPathSyntax("unknown axis %q", name)
		}
		ax = a
	}
	test, err := p.parseNodeTest()
	if err != nil {
		return step{}, err
	}
	var preds []expr
	for p.cur().kind == tokLBracket {
		pr, err := p.parsePredicate()
		if err != nil {
			return step{}, err
		}
		preds = append(preds, pr)
	}
	return step{axis: ax, test: test, predicates: preds}, nil
}

func (p *parseState) parseNodeTest() (nodeTest, error) {
	switch p.cur().kind {
	case tokStar:
		p.advance()
		return nodeTest{kind: testWildcard}, nil

	case tokNodeType:
		name := p.cur().text
		p.advance()
		if _, err := p.expect(tokLParen); err != nil {
			return nodeTest{}, err
		}
		switch name {
		case "node":
			if _, err := p.expect(tokRParen); err != nil {
				return nodeTest{}, err
			}
			return nodeTest{kind: testNode}, nil
		case "text":
			if _, err := p.expect(tokRParen); err != nil {
				return nodeTest{}, err
			}
			return nodeTest{kind: testText}, nil
		case "comment":
			if _, err := p.expect(tokRParen); err != nil {
				return nodeTest{}, err
			}
			return nodeTest{kind: testComment}, nil
		case "processing-instruction":
			nt := nodeTest{kind: testPI}
			if p.cur().kind == tokLiteral {
				nt.piLit = p.cur().text
				nt.hasPI = true
				p.advance()
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nodeTest{}, err
			}
			return nt, nil
		default:
			return nodeTest{}, errXPathSyntax("unknown node type %q", name)
		}

	case tokName:
		name := p.cur().text
		p.advance()
		return nodeTest{kind: testName, name: localPart(name)}, nil

	default:
		return nodeTest{}, errXPathSyntax("expected a node test, got %v", p.cur())
	}
}

// localPart strips any "prefix:" from a QName token's text, since
// spec.md §4.I's NameTest matches by local-name only.
func localPart(qname string) string {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

func (p *parseState) parsePredicate() (expr, error) {
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *parseState) parsePrimary() (expr, error) {
	switch p.cur().kind {
	case tokVariable:
		name := p.cur().text
		p.advance()
		return variableRef{name: name}, nil

	case tokLParen:
		p.advance()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil

	case tokLiteral:
		v := p.cur().text
		p.advance()
		return literalString{value: v}, nil

	case tokNumber:
		v := p.cur().num
		p.advance()
		return literalNumber{value: v}, nil

	case tokFunctionName:
		name := p.cur().text
		p.advance()
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		var args []expr
		if p.cur().kind != tokRParen {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			for p.cur().kind == tokComma {
				p.advance()
				arg, err := p.parseOr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return functionCall{name: name, args: args}, nil

	default:
		return nil, errXPathSyntax("unexpected token %v in expression", p.cur())
	}
}

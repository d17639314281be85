package expr

// DefaultMaxDepth bounds how deeply unary operators and parentheses may nest.
const DefaultMaxDepth = 256

type parseOptions struct {
	maxDepth int
}

// ParseOption configures Parse and Compile.
type ParseOption func(*parseOptions)

// WithMaxDepth sets the nesting limit for unary operators and parentheses.
// Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) ParseOption {
	return func(o *parseOptions) {
		o.maxDepth = depth
	}
}

// Compile tokenizes and parses src.
func Compile(src string, opts ...ParseOption) (Node, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}

// Parse builds the AST for tokens using the grammar, lowest precedence first:
//
//	expr     := or_expr
//	or_expr  := and_expr ( '||' and_expr )*
//	and_expr := cmp_expr ( '&&' cmp_expr )*
//	cmp_expr := add_expr ( cmp_op add_expr )*
//	add_expr := mul_expr ( ('+'|'-') mul_expr )*
//	mul_expr := unary ( ('*'|'/'|'%') unary )*
//	unary    := ('!'|'-') unary | NUM | VAR | '(' expr ')'
func Parse(tokens []Token, opts ...ParseOption) (Node, error) {
	o := parseOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}

	p := &parser{tokens: tokens, maxDepth: o.maxDepth}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, syntaxErrorf(tok.Pos, "unexpected token %q after end of expression", tok)
	}
	return root, nil
}

type parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

// peek returns the current token; ok is false at end of input.
func (p *parser) peek() (tok Token, ok bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// accept consumes the current token if it is of kind k and, when ops is not
// empty, spells one of ops.
func (p *parser) accept(k Kind, ops ...string) (Token, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != k {
		return Token{}, false
	}
	if len(ops) > 0 {
		matched := false
		for _, op := range ops {
			if tok.Op == op {
				matched = true
				break
			}
		}
		if !matched {
			return Token{}, false
		}
	}
	p.pos++
	return tok, true
}

// enter tracks recursion through unary and parenthesized forms.
func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > p.maxDepth {
		return syntaxErrorf(pos, "expression nested too deeply (limit %d)", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) expr() (Node, error) {
	return p.orExpr()
}

func (p *parser) orExpr() (Node, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(OR); !ok {
			return left, nil
		}
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}
}

func (p *parser) andExpr() (Node, error) {
	left, err := p.cmpExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(AND); !ok {
			return left, nil
		}
		right, err := p.cmpExpr()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}
}

func (p *parser) cmpExpr() (Node, error) {
	left, err := p.addExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept(CMP)
		if !ok {
			return left, nil
		}
		op, known := cmpOps[tok.Op]
		if !known {
			return nil, syntaxErrorf(tok.Pos, "unknown comparison %q", tok.Op)
		}
		right, err := p.addExpr()
		if err != nil {
			return nil, err
		}
		left = &CompareExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) addExpr() (Node, error) {
	left, err := p.mulExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept(OP, "+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.mulExpr()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: ArithOp(tok.Op[0]), Left: left, Right: right}
	}
}

func (p *parser) mulExpr() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept(OP, "*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: ArithOp(tok.Op[0]), Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, syntaxErrorf(-1, "unexpected end of rule, expected operand")
	}

	switch {
	case tok.is(OP, "!"), tok.is(OP, "-"):
		p.pos++
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: UnaryOp(tok.Op[0]), X: x}, nil

	case tok.Kind == NUM:
		p.pos++
		return &NumberLit{Value: tok.Num}, nil

	case tok.Kind == VAR:
		p.pos++
		return &VarRef{Index: tok.Index}, nil

	case tok.is(OP, "("):
		p.pos++
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(OP, ")"); !ok {
			pos := -1
			if next, more := p.peek(); more {
				pos = next.Pos
			}
			return nil, syntaxErrorf(pos, "missing ')' to close '(' at offset %d", tok.Pos)
		}
		return x, nil
	}

	return nil, syntaxErrorf(tok.Pos, "unexpected token %q, expected operand", tok)
}

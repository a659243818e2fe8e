// Package parser builds the AST of one branching tree via recursive descent.
//
// Nesting is decided purely by columns: a branch is a child of the enclosing
// branch while its glyph starts strictly to the right of the parent's glyph.
// There is no fixed-width indent token.
package parser

import (
	"fmt"
	"strings"

	"bulloak/internal/ast"
	"bulloak/internal/diag"
	"bulloak/internal/source"
	"bulloak/internal/token"
)

// Options configures a Parser instance.
type Options struct {
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

// Parser holds the state for parsing one tree's token slice.
type Parser struct {
	file   *source.File
	tokens []token.Token
	pos    int
	opts   Options
	base   source.Span // empty span at the window start, for token-less errors
}

// Parse consumes the token slice of one tree and returns its AST.
// windowStart is the byte offset the tokens were lexed from; it anchors
// errors that have no token to point at. Errors are fail-fast: the first
// syntax error stops this tree.
func Parse(file *source.File, tokens []token.Token, windowStart uint32, opts Options) (*ast.Node, bool) {
	p := &Parser{
		file:   file,
		tokens: tokens,
		opts:   opts,
		base:   source.Span{File: file.ID, Start: windowStart, End: windowStart},
	}
	return p.parseTree()
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) bump() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.opts.reporter().Report(diag.Error(code, sp, msg))
}

func (p *Parser) endSpan() source.Span {
	if len(p.tokens) == 0 {
		return p.base
	}
	last := p.tokens[len(p.tokens)-1].Span
	return source.Span{File: last.File, Start: last.End, End: last.End}
}

func (p *Parser) parseTree() (*ast.Node, bool) {
	if len(p.tokens) == 0 {
		p.fail(diag.SynTreeEmpty, p.base, "the tree is empty")
		return nil, false
	}

	rootTok := p.peek()
	if rootTok.Kind != token.Word {
		p.fail(diag.SynTreeRootless, rootTok.Span, "the tree must start with a bare root name")
		return nil, false
	}
	p.bump()

	root := &ast.Node{
		Kind:  ast.KindRoot,
		Title: rootTok.Text,
		Span:  rootTok.Span,
	}

	if ok := p.checkGlyphLayout(); !ok {
		return nil, false
	}

	children, ok := p.parseBranches(0)
	if !ok {
		return nil, false
	}
	root.Children = children

	if !p.eof() {
		t := p.peek()
		p.failUnexpected(t)
		return nil, false
	}
	return root, true
}

// parseBranches collects the sibling branches whose glyph column is strictly
// greater than parentCol.
func (p *Parser) parseBranches(parentCol uint32) ([]*ast.Node, bool) {
	var nodes []*ast.Node

	for !p.eof() {
		t := p.peek()
		if !t.Kind.IsBranchGlyph() {
			if parentCol == 0 {
				// Stray non-glyph token at the top level.
				p.failUnexpected(t)
				return nil, false
			}
			break
		}
		if t.Col <= parentCol {
			break
		}
		node, ok := p.parseBranch()
		if !ok {
			return nil, false
		}
		nodes = append(nodes, node)
	}
	return nodes, true
}

// checkGlyphLayout validates the Tee/Corner rules over the whole tree before
// descent: a glyph at column c is the last sibling of its level when no later
// glyph sits at exactly column c before one at a smaller column (or before
// the end of the tree). Corner must be last, Tee must not be. Running this
// up front keeps the glyph rules from being shadowed by title errors deeper
// in the same branch.
func (p *Parser) checkGlyphLayout() bool {
	glyphs := make([]token.Token, 0, len(p.tokens))
	for _, t := range p.tokens {
		if t.Kind.IsBranchGlyph() {
			glyphs = append(glyphs, t)
		}
	}

	for i, g := range glyphs {
		last := true
		for _, h := range glyphs[i+1:] {
			if h.Col < g.Col {
				break
			}
			if h.Col == g.Col {
				last = false
				break
			}
		}
		if g.Kind == token.Corner && !last {
			p.fail(diag.SynCornerNotLastChild, g.Span, "'└' must be the last child of its branch")
			return false
		}
		if g.Kind == token.Tee && last {
			p.fail(diag.SynTeeLastChild, g.Span, "'├' must not be the last child of its branch")
			return false
		}
	}
	return true
}

func (p *Parser) parseBranch() (*ast.Node, bool) {
	glyph := p.bump()

	if p.eof() {
		p.fail(diag.SynEofUnexpected, p.endSpan(), "unexpected end of input after a branch glyph")
		return nil, false
	}

	t := p.peek()
	switch t.Kind {
	case token.KwWhen, token.KwGiven:
		return p.parseCondition(glyph.Col)
	case token.KwIt:
		return p.parseAction(glyph.Col)
	default:
		p.failUnexpected(t)
		return nil, false
	}
}

func (p *Parser) parseCondition(ownCol uint32) (*ast.Node, bool) {
	kw := p.bump()

	words, span := p.titleWords(kw)
	if len(words) == 1 {
		p.fail(diag.SynTitleMissing, kw.Span,
			fmt.Sprintf("the '%s' condition has no title", strings.ToLower(kw.Text)))
		return nil, false
	}

	node := &ast.Node{
		Kind:    ast.KindCondition,
		Title:   strings.Join(words, " "),
		Keyword: kw.Text,
		Span:    span,
	}

	children, ok := p.parseBranches(ownCol)
	if !ok {
		return nil, false
	}
	node.Children = children
	return node, true
}

func (p *Parser) parseAction(ownCol uint32) (*ast.Node, bool) {
	kw := p.bump()

	words, span := p.titleWords(kw)
	node := &ast.Node{
		Kind:    ast.KindAction,
		Title:   strings.Join(words, " "),
		Keyword: kw.Text,
		Span:    span,
	}

	children, ok := p.parseDescriptions(ownCol)
	if !ok {
		return nil, false
	}
	node.Children = children
	return node, true
}

// titleWords consumes the keyword's trailing title tokens. Keywords that
// show up mid-title degrade to plain words.
func (p *Parser) titleWords(kw token.Token) ([]string, source.Span) {
	words := []string{kw.Text}
	span := kw.Span
	for !p.eof() && p.peek().Kind.IsTitlePart() {
		t := p.bump()
		words = append(words, t.Text)
		span = span.Cover(t.Span)
	}
	return words, span
}

// parseDescriptions parses the nested free-text children of an action.
// Only plain words may appear here; the same column rule and glyph rules
// apply as for branches.
func (p *Parser) parseDescriptions(parentCol uint32) ([]*ast.Node, bool) {
	var nodes []*ast.Node

	for !p.eof() {
		t := p.peek()
		if !t.Kind.IsBranchGlyph() || t.Col <= parentCol {
			break
		}
		glyph := p.bump()

		var words []string
		span := source.Span{File: glyph.Span.File, Start: glyph.Span.End, End: glyph.Span.End}
		for !p.eof() {
			wt := p.peek()
			if wt.Kind.IsBranchGlyph() {
				break
			}
			if wt.Kind != token.Word {
				p.fail(diag.SynDescriptionTokenUnexpected, wt.Span,
					fmt.Sprintf("unexpected '%s' inside an action description", strings.ToLower(wt.Text)))
				return nil, false
			}
			p.bump()
			words = append(words, wt.Text)
			span = span.Cover(wt.Span)
		}

		node := &ast.Node{
			Kind:  ast.KindDescription,
			Title: strings.Join(words, " "),
			Span:  span,
		}
		children, ok := p.parseDescriptions(glyph.Col)
		if !ok {
			return nil, false
		}
		node.Children = children

		nodes = append(nodes, node)
	}
	return nodes, true
}

func (p *Parser) failUnexpected(t token.Token) {
	switch t.Kind {
	case token.Word:
		p.fail(diag.SynWordUnexpected, t.Span, fmt.Sprintf("unexpected word %q", t.Text))
	case token.KwWhen:
		p.fail(diag.SynWhenUnexpected, t.Span, "unexpected 'when' keyword")
	case token.KwGiven:
		p.fail(diag.SynGivenUnexpected, t.Span, "unexpected 'given' keyword")
	case token.KwIt:
		p.fail(diag.SynItUnexpected, t.Span, "unexpected 'it' keyword")
	default:
		p.fail(diag.SynTokenUnexpected, t.Span, fmt.Sprintf("unexpected token '%s'", t.Text))
	}
}

package sol

import (
	"errors"
	"fmt"

	"bulloak/internal/source"
)

// ErrUnbalanced is returned when braces do not close before end of file.
var ErrUnbalanced = errors.New("unbalanced braces")

// Parse builds the structural model of a Solidity file. A file without any
// contract parses fine (the checker reports that as a violation); truncated
// or brace-unbalanced text is a parse error.
func Parse(file *source.File) (*File, error) {
	p := &parser{scan: newScanner(file), file: file}
	return p.parse()
}

type parser struct {
	scan *scanner
	file *source.File
}

func (p *parser) parse() (*File, error) {
	out := &File{}
	for {
		it := p.scan.next()
		switch {
		case it.kind == itemEOF:
			return out, nil
		case it.kind == itemWord && it.text == "contract":
			contract, err := p.parseContract(it)
			if err != nil {
				return nil, err
			}
			out.Contracts = append(out.Contracts, *contract)
		case it.kind == itemPunct && it.text == "{":
			// Free-standing block outside a contract: skip it whole.
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) parseContract(kw item) (*Contract, error) {
	name := p.scan.next()
	if name.kind != itemWord {
		return nil, fmt.Errorf("contract at offset %d has no name", kw.off)
	}

	contract := &Contract{
		Name:     name.text,
		NameSpan: p.span(name),
	}

	// Skip the inheritance list up to the opening brace.
	for {
		it := p.scan.next()
		if it.kind == itemEOF {
			return nil, fmt.Errorf("contract %q: %w", contract.Name, ErrUnbalanced)
		}
		if it.kind == itemPunct && it.text == "{" {
			contract.BodyStart = it.off + 1
			break
		}
	}

	for {
		it := p.scan.next()
		switch {
		case it.kind == itemEOF:
			return nil, fmt.Errorf("contract %q: %w", contract.Name, ErrUnbalanced)

		case it.kind == itemPunct && it.text == "}":
			contract.BodyEnd = it.off
			contract.Span = source.Span{File: p.file.ID, Start: kw.off, End: it.off + 1}
			return contract, nil

		case it.kind == itemPunct && it.text == "{":
			// Anonymous block (constructor body reached without keyword
			// tracking, assembly, etc.): consume it whole.
			if err := p.skipBalanced(); err != nil {
				return nil, fmt.Errorf("contract %q: %w", contract.Name, err)
			}

		case it.kind == itemWord && (it.text == "function" || it.text == "modifier"):
			member, err := p.parseMember(it)
			if err != nil {
				return nil, fmt.Errorf("contract %q: %w", contract.Name, err)
			}
			contract.Members = append(contract.Members, *member)
		}
	}
}

func (p *parser) parseMember(kw item) (*Member, error) {
	kind := KindFunction
	if kw.text == "modifier" {
		kind = KindModifier
	}

	name := p.scan.next()
	if name.kind != itemWord {
		return nil, fmt.Errorf("%s at offset %d has no name", kw.text, kw.off)
	}

	member := &Member{
		Kind:     kind,
		Name:     name.text,
		NameSpan: p.span(name),
		Line:     p.file.LineCol(kw.off).Line,
	}

	// The header ends at either a ';' (declaration only) or the body's
	// opening brace; the member then runs through the matching '}'.
	for {
		it := p.scan.next()
		switch {
		case it.kind == itemEOF:
			return nil, fmt.Errorf("%s %q: %w", kw.text, member.Name, ErrUnbalanced)
		case it.kind == itemPunct && it.text == ";":
			member.Span = source.Span{File: p.file.ID, Start: kw.off, End: it.off + 1}
			return member, nil
		case it.kind == itemPunct && it.text == "{":
			end, err := p.skipBalancedEnd()
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", kw.text, member.Name, err)
			}
			member.Span = source.Span{File: p.file.ID, Start: kw.off, End: end}
			return member, nil
		}
	}
}

// skipBalanced consumes tokens until the brace opened just before the call
// is closed again.
func (p *parser) skipBalanced() error {
	_, err := p.skipBalancedEnd()
	return err
}

func (p *parser) skipBalancedEnd() (uint32, error) {
	depth := 1
	for depth > 0 {
		it := p.scan.next()
		switch {
		case it.kind == itemEOF:
			return 0, ErrUnbalanced
		case it.kind == itemPunct && it.text == "{":
			depth++
		case it.kind == itemPunct && it.text == "}":
			depth--
			if depth == 0 {
				return it.off + 1, nil
			}
		}
	}
	return 0, ErrUnbalanced
}

func (p *parser) span(it item) source.Span {
	return source.Span{File: p.file.ID, Start: it.off, End: it.off + uint32(len(it.text))}
}

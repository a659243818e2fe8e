package sol_test

import (
	"errors"
	"testing"

	"bulloak/internal/sol"
	"bulloak/internal/source"
)

func parse(t *testing.T, text string) (*sol.File, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.t.sol", []byte(text))
	return sol.Parse(fs.Get(id))
}

func TestParseContract(t *testing.T) {
	text := `// SPDX-License-Identifier: UNLICENSED
pragma solidity 0.8.0;

contract FooTest {
    modifier whenPaused() {
        _;
    }

    function test_A() external whenPaused {
        // it works
    }

    function helper() internal view returns (uint256) {
        return 1;
    }
}
`
	f, err := parse(t, text)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Contracts) != 1 {
		t.Fatalf("contracts = %d", len(f.Contracts))
	}

	c := f.Contracts[0]
	if c.Name != "FooTest" {
		t.Errorf("name = %q", c.Name)
	}
	if len(c.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(c.Members))
	}
	if c.Members[0].Kind != sol.KindModifier || c.Members[0].Name != "whenPaused" {
		t.Errorf("member 0 = %v %q", c.Members[0].Kind, c.Members[0].Name)
	}
	if c.Members[1].Kind != sol.KindFunction || c.Members[1].Name != "test_A" {
		t.Errorf("member 1 = %v %q", c.Members[1].Kind, c.Members[1].Name)
	}

	if got := c.FindMember("helper", sol.KindFunction); got != 2 {
		t.Errorf("FindMember(helper) = %d", got)
	}
	if got := c.FindMember("whenPaused", sol.KindFunction); got != -1 {
		t.Error("a modifier must not match as a function")
	}
}

func TestParseIgnoresBracesInTrivia(t *testing.T) {
	text := `contract C {
    // a stray { in a comment
    /* and a } in
       a block comment { */
    function f() external {
        string memory s = "braces { } in a string";
        string memory q = 'and { in a char string';
    }
}
`
	f, err := parse(t, text)
	if err != nil {
		t.Fatal(err)
	}
	c := f.Contracts[0]
	if len(c.Members) != 1 || c.Members[0].Name != "f" {
		t.Fatalf("members = %+v", c.Members)
	}
}

func TestParseInheritanceAndDeclarations(t *testing.T) {
	text := `contract C is Base, Other {
    function decl() external;
    function body() external { emit E(); }
}
`
	f, err := parse(t, text)
	if err != nil {
		t.Fatal(err)
	}
	c := f.Contracts[0]
	if c.Name != "C" {
		t.Errorf("name = %q", c.Name)
	}
	if len(c.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(c.Members))
	}
}

func TestParseMemberSpansAndLines(t *testing.T) {
	text := "contract C {\n    function f() external {\n    }\n}\n"
	f, err := parse(t, text)
	if err != nil {
		t.Fatal(err)
	}
	c := f.Contracts[0]

	if c.BodyStart != uint32(len("contract C {")) {
		t.Errorf("BodyStart = %d", c.BodyStart)
	}
	if text[c.BodyEnd] != '}' {
		t.Errorf("BodyEnd points at %q", text[c.BodyEnd])
	}

	m := c.Members[0]
	if m.Line != 2 {
		t.Errorf("member line = %d, want 2", m.Line)
	}
	if got := text[m.Span.Start:m.Span.End]; got != "function f() external {\n    }" {
		t.Errorf("member span = %q", got)
	}
}

func TestParseNoContract(t *testing.T) {
	f, err := parse(t, "pragma solidity 0.8.0;\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Contracts) != 0 {
		t.Errorf("contracts = %d, want 0", len(f.Contracts))
	}
}

func TestParseUnbalanced(t *testing.T) {
	_, err := parse(t, "contract C {\n    function f() external {\n")
	if !errors.Is(err, sol.ErrUnbalanced) {
		t.Fatalf("err = %v, want ErrUnbalanced", err)
	}
}

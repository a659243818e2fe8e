package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bulloak/internal/diag"
	"bulloak/internal/driver"
	"bulloak/internal/scaffold"
	"bulloak/internal/source"
)

func TestCompanionPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"tests/foo.tree", "tests/foo.t.sol"},
		{"foo.tree", "foo.t.sol"},
		{"noext", "noext.t.sol"},
	}
	for _, tc := range cases {
		if got := driver.CompanionPath(tc.in); got != tc.want {
			t.Errorf("CompanionPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompileSingleTree(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("spec.tree", []byte("Foo\n└── when a\n    └── it works\n"))

	bag := diag.NewBag()
	root, ok := driver.Compile(fs.Get(id), bag, driver.Options{})
	if !ok {
		t.Fatalf("compile failed: %v", bag.Items())
	}
	if root.Contract().Identifier != "Foo" {
		t.Errorf("contract = %q", root.Contract().Identifier)
	}
}

func TestCompileMultiTree(t *testing.T) {
	text := `Vault::deposit
└── when the amount is zero
    └── it should revert

Vault::withdraw
└── when the amount is zero
    └── it works
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("spec.tree", []byte(text))

	bag := diag.NewBag()
	root, ok := driver.Compile(fs.Get(id), bag, driver.Options{})
	if !ok {
		t.Fatalf("compile failed: %v", bag.Items())
	}

	contract := root.Contract()
	if contract.Identifier != "Vault" {
		t.Errorf("contract = %q", contract.Identifier)
	}

	var names []string
	for _, def := range contract.Definitions() {
		names = append(names, def.Identifier)
	}
	want := []string{"test_RevertWhen_DepositTheAmountIsZero", "test_WithdrawTheAmountIsZero"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("definitions = %v, want %v", names, want)
	}
}

func TestCompileEmptyFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("spec.tree", []byte("\n   \n"))

	bag := diag.NewBag()
	_, ok := driver.Compile(fs.Get(id), bag, driver.Options{})
	if ok {
		t.Fatal("expected compile to fail")
	}
	if bag.Items()[0].Code != diag.SynTreeEmpty {
		t.Errorf("code = %v", bag.Items()[0].Code)
	}
}

func TestCompileReportsErrorFromSecondTree(t *testing.T) {
	text := `Vault::deposit
└── when a
    └── it works

Vault::withdraw
└── when
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("spec.tree", []byte(text))

	bag := diag.NewBag()
	_, ok := driver.Compile(fs.Get(id), bag, driver.Options{})
	if ok {
		t.Fatal("expected compile to fail")
	}
	if bag.Items()[0].Code != diag.SynTitleMissing {
		t.Errorf("code = %v", bag.Items()[0].Code)
	}
}

func TestScaffoldAndCheckRoundTrip(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "foo.tree")
	tree := "Foo\n└── when a\n    └── it should revert\n"
	if err := os.WriteFile(treePath, []byte(tree), 0o644); err != nil {
		t.Fatal(err)
	}

	res := driver.ScaffoldFile(source.NewFileSet(), treePath, driver.Options{})
	if !res.Ok {
		t.Fatalf("scaffold failed: %v", res.Bag.Items())
	}
	if err := driver.WriteScaffold(res, false); err != nil {
		t.Fatal(err)
	}

	// A freshly scaffolded file must check clean.
	checkRes := driver.CheckFile(source.NewFileSet(), treePath, driver.CheckOptions{})
	if !checkRes.Ok {
		t.Fatalf("check failed: %v", checkRes.Bag.Items())
	}
	if len(checkRes.Violations) != 0 {
		t.Fatalf("violations = %v", checkRes.Violations)
	}

	// Overwrite without force must be refused.
	if err := driver.WriteScaffold(res, false); err == nil {
		t.Error("expected an overwrite error without force")
	}
	if err := driver.WriteScaffold(res, true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}

func TestCheckMissingCompanionFile(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "foo.tree")
	if err := os.WriteFile(treePath, []byte("Foo\n└── when a\n    └── it works\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := driver.CheckFile(source.NewFileSet(), treePath, driver.CheckOptions{})
	if len(res.Violations) != 1 {
		t.Fatalf("violations = %+v", res.Violations)
	}
	v := res.Violations[0]
	if v.Fixable() {
		t.Error("a missing companion file is not auto-fixable")
	}
	if !strings.Contains(v.Message(), "missing its matching Solidity file") {
		t.Errorf("message = %q", v.Message())
	}
}

func TestCheckFixWritesRepairedFile(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "foo.tree")
	tree := "Foo\n├── when a\n│   └── it works\n└── when b\n    └── it runs\n"
	if err := os.WriteFile(treePath, []byte(tree), 0o644); err != nil {
		t.Fatal(err)
	}
	solPath := driver.CompanionPath(treePath)
	if err := os.WriteFile(solPath, []byte("contract Foo {\n    function test_A() external {}\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := driver.CheckFile(source.NewFileSet(), treePath, driver.CheckOptions{Fix: true})
	if len(res.Fixed) != 1 {
		t.Fatalf("fixed = %+v", res.Fixed)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("violations = %+v", res.Violations)
	}

	written, err := os.ReadFile(solPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), "function test_B()") {
		t.Errorf("repaired file = %s", written)
	}
}

func TestCheckBatchKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.tree", "b.tree", "c.tree"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("Foo\n└── when x\n    └── it works\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	results, err := driver.CheckBatch(context.Background(), paths, 3, driver.CheckOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, res := range results {
		if res.TreePath != paths[i] {
			t.Errorf("result %d = %q, want %q", i, res.TreePath, paths[i])
		}
	}
}

func TestListTreeFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{
		filepath.Join(dir, "b.tree"),
		filepath.Join(dir, "a.tree"),
		filepath.Join(sub, "c.tree"),
		filepath.Join(dir, "ignored.txt"),
	} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := driver.ListTreeFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Errorf("files not sorted: %v", files)
		}
	}
}

func TestScaffoldVersionOption(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("spec.tree", []byte("Foo\n└── when a\n    └── it works\n"))
	bag := diag.NewBag()
	root, ok := driver.Compile(fs.Get(id), bag, driver.Options{})
	if !ok {
		t.Fatal("compile failed")
	}
	out := scaffold.Emit(root, scaffold.Options{SolidityVersion: "0.8.24"})
	if !strings.Contains(out, "pragma solidity 0.8.24;") {
		t.Errorf("output = %s", out)
	}
}

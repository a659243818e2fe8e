package hir_test

import (
	"testing"

	"bulloak/internal/diag"
	"bulloak/internal/hir"
)

func compileTrees(t *testing.T, texts ...string) []*hir.Node {
	t.Helper()
	out := make([]*hir.Node, 0, len(texts))
	for _, text := range texts {
		out = append(out, compileTree(t, text))
	}
	return out
}

func TestCombineSingleTreePassthrough(t *testing.T) {
	trees := compileTrees(t, "Foo\n└── when a\n    └── it works\n")
	combined, ok := hir.Combine(trees, nil)
	if !ok {
		t.Fatal("combine failed")
	}
	if combined != trees[0] {
		t.Error("a single tree must pass through unchanged")
	}
}

func TestCombineRenamesFunctions(t *testing.T) {
	trees := compileTrees(t,
		"Vault::deposit\n└── when the amount is zero\n    └── it should revert\n",
		"Vault::withdraw\n└── when the amount is zero\n    └── it works\n",
	)
	bag := diag.NewBag()
	combined, ok := hir.Combine(trees, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("combine failed: %v", bag.Items())
	}

	contract := combined.Contract()
	if contract.Identifier != "Vault" {
		t.Errorf("contract = %q, want Vault", contract.Identifier)
	}

	findDef(t, combined, "test_RevertWhen_DepositTheAmountIsZero")
	findDef(t, combined, "test_WithdrawTheAmountIsZero")
}

func TestCombineRenameIgnoresRevertLikeTitles(t *testing.T) {
	// Underscores survive title sanitization, so a plain name can start
	// with "test_Revert…_". The component still goes right after "test_".
	trees := compileTrees(t,
		"Vault::deposit\n└── when revert_now foo\n    └── it works\n",
		"Vault::withdraw\n└── when the amount is zero\n    └── it should revert\n",
	)
	bag := diag.NewBag()
	combined, ok := hir.Combine(trees, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("combine failed: %v", bag.Items())
	}

	findDef(t, combined, "test_DepositRevert_nowFoo")
	findDef(t, combined, "test_RevertWhen_WithdrawTheAmountIsZero")
}

func TestCombineDeduplicatesModifiers(t *testing.T) {
	trees := compileTrees(t,
		"Vault::deposit\n└── when paused\n    └── when called\n        └── it should revert\n",
		"Vault::withdraw\n└── when paused\n    └── when called\n        └── it also reverts\n",
	)
	combined, ok := hir.Combine(trees, nil)
	if !ok {
		t.Fatal("combine failed")
	}

	count := 0
	for _, def := range combined.Contract().Definitions() {
		if def.Ty == hir.TyModifier && def.Identifier == "whenPaused" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("whenPaused defined %d times, want 1", count)
	}
}

func TestCombineErrors(t *testing.T) {
	cases := []struct {
		name  string
		texts []string
		code  diag.Code
	}{
		{
			"separator missing",
			[]string{
				"Vault\n└── when a\n    └── it works\n",
				"Vault::withdraw\n└── when b\n    └── it works\n",
			},
			diag.CombSeparatorMissing,
		},
		{
			"contract name missing",
			[]string{
				"::deposit\n└── when a\n    └── it works\n",
				"Vault::withdraw\n└── when b\n    └── it works\n",
			},
			diag.CombContractNameMissing,
		},
		{
			"contract name mismatch",
			[]string{
				"Vault::deposit\n└── when a\n    └── it works\n",
				"Safe::withdraw\n└── when b\n    └── it works\n",
			},
			diag.CombContractNameMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trees := compileTrees(t, tc.texts...)
			bag := diag.NewBag()
			_, ok := hir.Combine(trees, diag.BagReporter{Bag: bag})
			if ok {
				t.Fatal("expected combine to fail")
			}
			items := bag.Items()
			if len(items) != 1 || items[0].Code != tc.code {
				t.Fatalf("diagnostics = %v, want %v", items, tc.code)
			}
		})
	}
}

func TestCombineReportsEveryBadRoot(t *testing.T) {
	trees := compileTrees(t,
		"Vault::deposit\n└── when a\n    └── it works\n",
		"Safe::withdraw\n└── when b\n    └── it works\n",
		"Pool\n└── when c\n    └── it works\n",
	)
	bag := diag.NewBag()
	_, ok := hir.Combine(trees, diag.BagReporter{Bag: bag})
	if ok {
		t.Fatal("expected combine to fail")
	}
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2 (mismatch + missing separator): %v", bag.Len(), bag.Items())
	}
}

package driver_test

import (
	"os"
	"testing"

	"bulloak/internal/driver"
	"bulloak/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func checkOne(t *testing.T, path string, opts driver.CheckOptions) *driver.CheckResult {
	t.Helper()
	res := driver.CheckFile(source.NewFileSet(), path, opts)
	if !res.Ok {
		t.Fatalf("check did not compile: %v", res.Bag.Items())
	}
	return res
}

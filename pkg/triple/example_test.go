package triple_test

import (
	"fmt"

	"github.com/benfogle/crossbuild/pkg/triple"
)

// ExampleParse demonstrates parsing a fully specified host triple.
func ExampleParse() {
	t, err := triple.Parse("armv7-unknown-linux-gnueabihf")
	if err != nil {
		panic(err)
	}

	fmt.Println(t.Arch, t.Sub, t.Vendor, t.Sys, t.ABI)
	// Output: arm v7 unknown linux gnueabihf
}

// ExampleParse_shortForm shows how missing fields default to "unknown".
func ExampleParse_shortForm() {
	t, err := triple.Parse("riscv64-linux")
	if err != nil {
		panic(err)
	}

	fmt.Println(t)
	// Output: riscv64-unknown-linux-unknown
}

// ExampleHostTriple_Normalized rewrites alias spellings to canonical ones.
func ExampleHostTriple_Normalized() {
	t := triple.MustParse("arm64-apple-macos")

	fmt.Println(t.Normalized())
	// Output: aarch64-apple-darwin-unknown
}

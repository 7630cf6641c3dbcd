package triple

import (
	"fmt"
	"strings"
)

// Parse parses a raw host triple string into its structured form.
//
// The grammar is <arch><sub>(-<vendor>)?(-<sys>)(-<abi>)? with two to four
// hyphen-separated components. Interpretation by component count:
//
//	4: arch(+sub)-vendor-sys-abi
//	3: ambiguous; if the last component is a known OS name the triple is
//	   read as arch(+sub)-vendor-sys, otherwise as arch(+sub)-sys-abi.
//	   This heuristic cannot be made exact: the textual format does not
//	   distinguish a missing vendor from a missing ABI.
//	2: arch(+sub)-sys
//	1: arch alone (not part of the conventional grammar, but accepted for
//	   maximal permissiveness)
//
// Fields not determined by the input are set to Unknown. Unrecognized
// components are preserved verbatim; Parse fails only for structurally
// unparseable input (empty string, empty component, more than four
// components).
func Parse(raw string) (HostTriple, error) {
	if raw == "" {
		return HostTriple{}, &InvalidTripleError{Raw: raw, Reason: "empty string"}
	}

	parts := strings.Split(raw, "-")
	if len(parts) > 4 {
		return HostTriple{}, &InvalidTripleError{
			Raw:    raw,
			Reason: fmt.Sprintf("%d components, at most 4 allowed", len(parts)),
		}
	}
	for _, p := range parts {
		if p == "" {
			return HostTriple{}, &InvalidTripleError{Raw: raw, Reason: "empty component"}
		}
	}

	t := HostTriple{Vendor: Unknown, Sys: Unknown, ABI: Unknown}
	t.Arch, t.Sub = splitSubArch(parts[0])

	switch len(parts) {
	case 1:
		// arch alone
	case 2:
		t.Sys = parts[1]
	case 3:
		if knownSys[parts[2]] {
			t.Vendor = parts[1]
			t.Sys = parts[2]
		} else {
			t.Sys = parts[1]
			t.ABI = parts[2]
		}
	case 4:
		t.Vendor = parts[1]
		t.Sys = parts[2]
		t.ABI = parts[3]
	}

	return t, nil
}

// MustParse is like Parse but panics on error. Intended for triples known
// valid at compile time, such as table entries and test fixtures.
func MustParse(raw string) HostTriple {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// splitSubArch splits a fused arch+sub component ("armv7" -> "arm", "v7").
// The split happens only when both the root and the suffix are recognized;
// otherwise the whole component is the architecture and sub is empty.
func splitSubArch(component string) (arch, sub string) {
	for _, root := range subArchRoots {
		if !strings.HasPrefix(component, root) {
			continue
		}
		rest := component[len(root):]
		if rest == "" {
			return root, ""
		}
		if subArchSuffixes[rest] {
			return root, rest
		}
	}
	return component, ""
}

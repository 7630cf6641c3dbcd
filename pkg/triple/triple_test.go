package triple

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want HostTriple
	}{
		{
			name: "four components",
			raw:  "aarch64-unknown-linux-gnu",
			want: HostTriple{Arch: "aarch64", Vendor: "unknown", Sys: "linux", ABI: "gnu"},
		},
		{
			name: "four components with sub-arch",
			raw:  "armv7-unknown-linux-gnueabihf",
			want: HostTriple{Arch: "arm", Sub: "v7", Vendor: "unknown", Sys: "linux", ABI: "gnueabihf"},
		},
		{
			name: "three components missing vendor",
			raw:  "x86_64-linux-gnu",
			want: HostTriple{Arch: "x86_64", Vendor: "unknown", Sys: "linux", ABI: "gnu"},
		},
		{
			name: "three components missing abi",
			raw:  "x86_64-pc-linux",
			want: HostTriple{Arch: "x86_64", Vendor: "pc", Sys: "linux", ABI: "unknown"},
		},
		{
			name: "android lands in the abi slot",
			raw:  "aarch64-linux-android",
			want: HostTriple{Arch: "aarch64", Vendor: "unknown", Sys: "linux", ABI: "android"},
		},
		{
			name: "two components",
			raw:  "riscv64-linux",
			want: HostTriple{Arch: "riscv64", Vendor: "unknown", Sys: "linux", ABI: "unknown"},
		},
		{
			name: "single component treated as arch",
			raw:  "wasm32",
			want: HostTriple{Arch: "wasm32", Vendor: "unknown", Sys: "unknown", ABI: "unknown"},
		},
		{
			name: "wholly unrecognized components preserved",
			raw:  "quantum9-acme-hoverboard-fancy",
			want: HostTriple{Arch: "quantum9", Vendor: "acme", Sys: "hoverboard", ABI: "fancy"},
		},
		{
			name: "apple vendor",
			raw:  "aarch64-apple-darwin",
			want: HostTriple{Arch: "aarch64", Vendor: "apple", Sys: "darwin", ABI: "unknown"},
		},
		{
			name: "bare metal eabi",
			raw:  "arm-none-eabi",
			want: HostTriple{Arch: "arm", Vendor: "unknown", Sys: "none", ABI: "eabi"},
		},
		{
			name: "armeb root not split",
			raw:  "armeb-unknown-linux-gnu",
			want: HostTriple{Arch: "armeb", Vendor: "unknown", Sys: "linux", ABI: "gnu"},
		},
		{
			name: "thumb sub-arch",
			raw:  "thumbv7m-none-eabi",
			want: HostTriple{Arch: "thumb", Sub: "v7m", Vendor: "unknown", Sys: "none", ABI: "eabi"},
		},
		{
			name: "unrecognized arch suffix stays fused",
			raw:  "armadillo-unknown-linux-gnu",
			want: HostTriple{Arch: "armadillo", Vendor: "unknown", Sys: "linux", ABI: "gnu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "too many components", raw: "a-b-c-d-e"},
		{name: "empty component", raw: "x86_64--linux"},
		{name: "trailing hyphen", raw: "x86_64-linux-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want InvalidTripleError", tt.raw)
			}
			if !IsInvalidTriple(err) {
				t.Errorf("Parse(%q) error = %v, want InvalidTripleError", tt.raw, err)
			}
			if !errors.Is(err, &InvalidTripleError{}) {
				t.Errorf("errors.Is does not match InvalidTripleError for %q", tt.raw)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	raws := []string{
		"aarch64-unknown-linux-gnu",
		"armv7-unknown-linux-gnueabihf",
		"x86_64-pc-windows-msvc",
		"x86_64-apple-darwin-unknown",
		"thumbv6m-unknown-none-eabi",
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			parsed := MustParse(raw)
			again, err := Parse(parsed.String())
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", parsed.String(), err)
			}
			if again != parsed {
				t.Errorf("round trip of %q = %+v, want %+v", raw, again, parsed)
			}
		})
	}
}

func TestStringCanonicalForm(t *testing.T) {
	got := MustParse("armv7-linux").String()
	want := "armv7-unknown-linux-unknown"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   HostTriple
		want HostTriple
	}{
		{
			name: "go runtime arch spelling",
			in:   HostTriple{Arch: "amd64", Vendor: Unknown, Sys: "linux", ABI: "gnu"},
			want: HostTriple{Arch: "x86_64", Vendor: Unknown, Sys: "linux", ABI: "gnu"},
		},
		{
			name: "macos alias",
			in:   HostTriple{Arch: "arm64", Vendor: "apple", Sys: "macos", ABI: Unknown},
			want: HostTriple{Arch: "aarch64", Vendor: "apple", Sys: "darwin", ABI: Unknown},
		},
		{
			name: "already canonical",
			in:   HostTriple{Arch: "x86_64", Vendor: "pc", Sys: "windows", ABI: "msvc"},
			want: HostTriple{Arch: "x86_64", Vendor: "pc", Sys: "windows", ABI: "msvc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNative(t *testing.T) {
	n := Native()
	if n.Arch == "" || n.Sys == "" {
		t.Fatalf("Native() returned empty fields: %+v", n)
	}
	if n.Vendor == "" || n.ABI == "" {
		t.Errorf("Native() must default fields to %q, got %+v", Unknown, n)
	}
	// The native triple always survives a round trip through its text form.
	reparsed, err := Parse(n.String())
	if err != nil {
		t.Fatalf("Parse(Native().String()) failed: %v", err)
	}
	if reparsed != n {
		t.Errorf("native triple round trip = %+v, want %+v", reparsed, n)
	}
}

func TestIsFullyKnown(t *testing.T) {
	if MustParse("armv7-linux").IsFullyKnown() {
		t.Error("triple with unknown vendor/abi reported as fully known")
	}
	if MustParse("armv7-unknown-linux-gnueabihf").IsFullyKnown() {
		t.Error("literal unknown vendor reported as fully known")
	}
	if !MustParse("x86_64-pc-windows-msvc").IsFullyKnown() {
		t.Error("fully specified triple reported as not fully known")
	}
}

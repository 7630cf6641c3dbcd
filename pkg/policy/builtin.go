package policy

import "time"

// GetBuiltinPolicies returns all built-in policies.
func GetBuiltinPolicies() []Policy {
	return []Policy{
		sysrootRecommendedPolicy(),
		buildMachinePathsPolicy(),
		nativeArchFlagsPolicy(),
		platformTagOverridePolicy(),
	}
}

// sysrootRecommendedPolicy flags cross builds that resolve headers and
// libraries against the build machine because no sysroot was configured.
func sysrootRecommendedPolicy() Policy {
	return Policy{
		Name:        "sysroot-recommended",
		Description: "Recommends configuring a sysroot when cross-compiling",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"sysroot", "hygiene"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package crossbuild.policies.sysroot

import rego.v1

deny contains violation if {
	input.cross_compiling
	not input.config.sysroot
	violation := {
		"message": "cross-compiling without a sysroot; include and library resolution will fall back to build-machine paths",
		"severity": "warning",
		"remediation": "set the 'sysroot' key to the host filesystem root on the build machine",
	}
}`,
	}
}

// buildMachinePathsPolicy rejects cross builds whose search paths point at
// the build machine's own system directories.
func buildMachinePathsPolicy() Policy {
	return Policy{
		Name:        "build-machine-paths",
		Description: "Rejects build-machine system paths in cross-compile search paths",
		Severity:    SeverityError,
		Enabled:     true,
		Tags:        []string{"paths", "hygiene"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package crossbuild.policies.paths

import rego.v1

build_machine_prefixes := ["/usr/include", "/usr/lib", "/usr/local/include", "/usr/local/lib"]

deny contains violation if {
	input.cross_compiling
	some dir in input.config.include_dirs
	some prefix in build_machine_prefixes
	startswith(dir, prefix)
	violation := {
		"message": sprintf("include dir '%s' points at the build machine, not the host sysroot", [dir]),
		"severity": "error",
		"remediation": "use paths under the configured sysroot",
	}
}

deny contains violation if {
	input.cross_compiling
	some dir in input.config.lib_dirs
	some prefix in build_machine_prefixes
	startswith(dir, prefix)
	violation := {
		"message": sprintf("lib dir '%s' points at the build machine, not the host sysroot", [dir]),
		"severity": "error",
		"remediation": "use paths under the configured sysroot",
	}
}`,
	}
}

// nativeArchFlagsPolicy rejects flags that pin code generation to the
// build machine's CPU in a cross build.
func nativeArchFlagsPolicy() Policy {
	return Policy{
		Name:        "native-arch-flags",
		Description: "Rejects -march=native/-mtune=native when cross-compiling",
		Severity:    SeverityError,
		Enabled:     true,
		Tags:        []string{"flags", "hygiene"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package crossbuild.policies.flags

import rego.v1

native_flags := ["-march=native", "-mtune=native", "-mcpu=native"]

flag_lists := ["cflags", "cxxflags", "ldflags"]

deny contains violation if {
	input.cross_compiling
	some list in flag_lists
	some flag in input.config[list]
	flag in native_flags
	violation := {
		"message": sprintf("%s contains '%s', which targets the build machine's CPU", [list, flag]),
		"severity": "error",
		"remediation": "replace native CPU flags with ones matching the host architecture",
	}
}`,
	}
}

// platformTagOverridePolicy notes a platform tag override on a build that
// is not cross-compiling, which usually means a leftover setting.
func platformTagOverridePolicy() Policy {
	return Policy{
		Name:        "platform-tag-override",
		Description: "Flags a platform_tag override on a native build",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"platform-tag"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package crossbuild.policies.platformtag

import rego.v1

deny contains violation if {
	not input.cross_compiling
	input.config.platform_tag != "auto"
	violation := {
		"message": sprintf("platform_tag overridden to '%s' on a native build", [input.config.platform_tag]),
		"severity": "warning",
		"remediation": "drop the platform_tag override or set a host triple",
	}
}`,
	}
}

// Package policy evaluates Rego policies against resolved cross-compile
// configurations. It ships built-in hygiene policies (sysroot presence,
// build-machine path leakage, native-only compiler flags) and loads
// additional .rego policies from disk. Violations carry a severity;
// error and critical violations make a configuration not allowed, while
// warnings and informational violations are only reported.
package policy

// Package config loads the operator-facing settings of this repository's
// CLI demo: the stall reporter interval, the wsbridge connection address,
// and logging/worker knobs. It mirrors the teacher's own config package in
// spirit — a wire Model decoded with HCL, converted into the typed Config
// the rest of the program actually uses — but is intentionally much
// smaller, since this repository has no grid/step DSL to parse, only a
// flat settings file.
package config

// Package resolve turns a module catalog into ordered build actions.
//
// A Resolver walks the dependency graph of one root module at a time with an
// explicit stack of (module, next dependency) frames and emits actions in
// post-order: every dependency's actions precede its consumer's. Interfaces
// and static libraries are memoized once finished, so a module shared by
// several consumers, or by several roots resolved with the same Resolver, is
// resolved and emitted exactly once.
//
// Propagation rules:
//
//   - include directories: every dependency's resolved directories in
//     declaration order, then the module's own, first occurrence kept;
//   - linked libraries: every dependency's resolved libraries, first
//     occurrence kept; a static library appends itself once archived, and
//     interfaces forward what their dependencies link.
//
// The step API (Start, Step, Take) lets a driver advance the traversal one
// frame at a time; Resolve runs a whole pass.
package resolve

// Package rewrite implements the text transformation engine that converts
// widget source files from singleton accessor usage to constructor-injected
// dependencies. It locates the target class declaration, extracts the
// no-argument constructor body with a balanced-delimiter scanner, synthesizes
// injected fields plus replacement constructors, and rewrites singleton
// accessor expressions to field references while leaving the generated
// delegating constructor untouched.
package rewrite

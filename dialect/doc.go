// Package dialect groups the dialect-specific rendering collaborators used
// by the sqlstep compiler. Each subpackage turns structured schema values
// into definition text and into the constructor expressions embedded in
// generated code.
package dialect

// Package parameter implements bounded scalar parameters and the auxiliary
// variable links that turn a parameter into a computed value.
//
// A plain parameter stores its value and validates every write against its
// bounds. Once AddAuxiliaryVariable is called the parameter is linked: each
// read evaluates the law at the variable's current value, and direct writes
// are refused with ErrLinkedParameter.
package parameter

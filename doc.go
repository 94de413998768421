// Package drill grades fill-in-the-blank arithmetic worksheets.
//
// A worksheet is a flat list of fields. Each field fills one or more cells of
// rendered equations, named by tags like "1c": the digits pick the equation
// and the letter picks the position within it. Grading assembles every
// equation from its fields' current text, evaluates both sides of the "=",
// and folds the outcomes into a per-field status, so a field shared between a
// solved and an unsolved equation shows up as partially correct.
//
// Expressions use the operators + - * / // ** % with the usual precedence,
// "**" binding right to left. There is no bracket or variable syntax; a
// malformed side simply evaluates to NaN and counts as not correct.
package drill

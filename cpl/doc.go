/*
Package cpl implements the constraint programming language front-end:
an S-expression tokenizer and parser, a macro expander and the
lowering of expanded terms to the boolean expressions of package bf.

A program is a sequence of macro definitions followed by one formula
term:

	(macro nonsmoker (p) (~ (_ smokes p)))
	(/\ (\/ a_1 a_2) (nonsmoker 1))

Core operators are and//\, or/\/, not/~, imply/-> and iff/<->. The
(_ a 1) form builds the indexed variable a_1, (? v) resolves v
against an externally supplied assignment, and the standard macros
if, calc, /\*, \/*, /\** and \/** provide conditionals, postfix
arithmetic and indexed expansions. Comments run from % to the end of
the line.

Compile lowers a program to clause expressions; Solve runs the CDCL
procedure on the Tseytin lowering and returns a model by source
variable name.
*/
package cpl

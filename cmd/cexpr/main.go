// Command cexpr parses and evaluates expressions of a complex variable z.
//
// Usage:
//
//	# Evaluate at the origin and at 1+2i
//	cexpr eval '(z+1)*(z-1)' --at 0 --at 1,2
//
//	# Evaluate one expression per line of a file
//	cexpr eval --in exprs.txt --at 0.5,0.5
//
//	# Show the parse tree
//	cexpr tree 'sin(z)^2 + cos(z)^2'
//
//	# Render |f(z)| as an SVG surface
//	cexpr plot '1/(1+z*z)' -o surface.svg
//
//	# Serve evaluation and plots over HTTP
//	cexpr serve --config cexpr.yaml
package main

func main() {
	Execute()
}

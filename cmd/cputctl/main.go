// cputctl inspects, validates, and resolves CPU template files.
package main

func main() {
	execute()
}

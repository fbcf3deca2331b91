// Command typedsql renders and runs query documents against a table
// document.
//
// Usage:
//
//	typedsql [flags] <command>
//
// Commands:
//   - render: print the SQL and bound arguments of a query document
//   - run: execute a query document against the configured database
//   - tables: list the tables and typed columns of the table document
//   - doctor: check the table document against the database
//   - config show: print the effective configuration
//   - version: print version information
package main

func main() {
	Execute()
}
